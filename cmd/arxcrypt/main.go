package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"arxcrypt/pkg/log"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "arxcrypt",
		Usage:   "ARX-128/8 cipher toolkit: encrypt, decrypt, vault, serve",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Commands: []*cli.Command{
			encryptCommand,
			decryptCommand,
			vaultCommand,
			serveCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}
