package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"arxcrypt/pkg/log"
	"arxcrypt/pkg/vault"
)

var vaultFlags = []cli.Flag{
	&cli.StringFlag{Name: "db", Usage: "vault database `FILE`"},
	&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "vault passphrase"},
	&cli.BoolFlag{Name: "compress", Usage: "compress entries with zstd before encryption"},
}

var vaultCommand = &cli.Command{
	Name:  "vault",
	Usage: "store and retrieve encrypted secrets",
	Subcommands: []*cli.Command{
		{
			Name:      "put",
			Usage:     "store a secret (value read from stdin)",
			ArgsUsage: "NAME",
			Flags:     vaultFlags,
			Action:    vaultPutCmd,
		},
		{
			Name:      "get",
			Usage:     "print a secret to stdout",
			ArgsUsage: "NAME",
			Flags:     vaultFlags,
			Action:    vaultGetCmd,
		},
		{
			Name:   "list",
			Usage:  "list stored secret names",
			Flags:  vaultFlags,
			Action: vaultListCmd,
		},
		{
			Name:      "rm",
			Usage:     "delete a secret",
			ArgsUsage: "NAME",
			Flags:     vaultFlags,
			Action:    vaultRmCmd,
		},
	},
}

func openVault(c *cli.Context) (*vault.Vault, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		dbPath = vault.DefaultPath()
	}
	var opts []vault.Option
	if c.Bool("compress") {
		opts = append(opts, vault.WithCompression())
	}
	return vault.Open(dbPath, c.String("key"), opts...)
}

func entryName(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one NAME argument")
	}
	return c.Args().First(), nil
}

func vaultPutCmd(c *cli.Context) error {
	name, err := entryName(c)
	if err != nil {
		return err
	}
	value, err := readInput("-")
	if err != nil {
		return err
	}
	v, err := openVault(c)
	if err != nil {
		return err
	}
	defer v.Close()
	if err := v.Put(name, trimNewline(value)); err != nil {
		return err
	}
	log.Printf("stored %q", name)
	return nil
}

func vaultGetCmd(c *cli.Context) error {
	log.Quiet()
	name, err := entryName(c)
	if err != nil {
		return err
	}
	v, err := openVault(c)
	if err != nil {
		return err
	}
	defer v.Close()
	value, err := v.Get(name)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(value, '\n'))
	return err
}

func vaultListCmd(c *cli.Context) error {
	log.Quiet()
	v, err := openVault(c)
	if err != nil {
		return err
	}
	defer v.Close()
	entries, err := v.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\n", e.Name, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func vaultRmCmd(c *cli.Context) error {
	name, err := entryName(c)
	if err != nil {
		return err
	}
	v, err := openVault(c)
	if err != nil {
		return err
	}
	defer v.Close()
	if err := v.Delete(name); err != nil {
		return err
	}
	log.Printf("deleted %q", name)
	return nil
}
