package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"arxcrypt/pkg/log"
	"arxcrypt/pkg/service"
)

var serveCommand = &cli.Command{
	Name:        "serve",
	Usage:       "run the HTTP cipher API",
	Description: `Starts the encrypt/decrypt HTTP API. Configuration comes from arxcrypt.yaml, ARXCRYPT_* environment variables and the flags below, in increasing precedence.`,
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "listen", Usage: "listen `ADDRESS` (overrides config)"},
		&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "cipher passphrase (overrides config)"},
		&cli.StringFlag{Name: "log-level", Usage: "log level (overrides config)"},
	},
	Action: serveCmd,
}

func serveCmd(c *cli.Context) error {
	cfg, err := service.LoadConfig()
	if err != nil {
		return err
	}
	if c.String("listen") != "" {
		cfg.ListenAddr = c.String("listen")
	}
	if c.String("key") != "" {
		cfg.Passphrase = c.String("key")
	}
	if c.String("log-level") != "" {
		cfg.LogLevel = c.String("log-level")
	}
	log.SetLevel(cfg.LogLevel)

	srv, err := service.NewServer(cfg)
	if err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("received signal %s, shutting down gracefully...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Api.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
		os.Exit(0)
	}()

	srv.Run()
	return nil
}
