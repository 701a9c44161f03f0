package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"arxcrypt/internal/fn"
	"arxcrypt/pkg/log"
	"arxcrypt/pkg/transform"
)

var codecFlags = []cli.Flag{
	&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "cipher passphrase"},
	&cli.StringFlag{Name: "key-file", Usage: "read the cipher key from `FILE`"},
	&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Value: "-", Usage: "input `FILE` (- for stdin)"},
	&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "-", Usage: "output `FILE` (- for stdout)"},
	&cli.BoolFlag{Name: "gzip", Usage: "gzip payload before encryption"},
}

var (
	encryptCommand = &cli.Command{
		Name:        "encrypt",
		Usage:       "encrypt data to base64 ciphertext",
		Description: `Reads plaintext, seals it with ARX-128/8 (ECB + PKCS#7) and writes standard-base64 ciphertext.`,
		Flags:       codecFlags,
		Action:      encryptCmd,
	}
	decryptCommand = &cli.Command{
		Name:        "decrypt",
		Usage:       "decrypt base64 ciphertext",
		Description: `Reads standard-base64 ciphertext, opens it with ARX-128/8 and writes the recovered plaintext.`,
		Flags:       codecFlags,
		Action:      decryptCmd,
	}
)

func encryptCmd(c *cli.Context) error {
	log.Quiet()
	processor, err := buildPipeline(c)
	if err != nil {
		return err
	}
	data, err := readInput(c.String("in"))
	if err != nil {
		return err
	}
	out, err := processor.PrepareOutput(data)
	if err != nil {
		return err
	}
	return writeOutput(c.String("out"), append(out, '\n'))
}

func decryptCmd(c *cli.Context) error {
	log.Quiet()
	processor, err := buildPipeline(c)
	if err != nil {
		return err
	}
	data, err := readInput(c.String("in"))
	if err != nil {
		return err
	}
	out, err := processor.ParseInput(trimNewline(data))
	if err != nil {
		return err
	}
	return writeOutput(c.String("out"), out)
}

// buildPipeline assembles [gzip?] -> arx -> base64 from the command flags.
func buildPipeline(c *cli.Context) (*transform.PayloadProcessor, error) {
	key, err := resolveKey(c)
	if err != nil {
		return nil, err
	}
	var stages []transform.Transform
	if c.Bool("gzip") {
		stages = append(stages, transform.NewGzipTransform())
	}
	stages = append(stages, transform.NewARXTransform(string(key)), transform.NewBase64Transform())
	return transform.NewPayloadProcessor(stages)
}

func resolveKey(c *cli.Context) ([]byte, error) {
	if c.String("key") != "" && c.String("key-file") != "" {
		return nil, fmt.Errorf("--key and --key-file are mutually exclusive")
	}
	if f := c.String("key-file"); f != "" {
		key, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file %s: %w", f, err)
		}
		return key, nil
	}
	return []byte(c.String("key")), nil
}

func readInput(name string) ([]byte, error) {
	src := fn.T[io.Reader](name == "-", os.Stdin, nil)
	if src == nil {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open input %s: %w", name, err)
		}
		defer f.Close()
		src = f
	}
	return io.ReadAll(src)
}

func writeOutput(name string, data []byte) error {
	if name == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(name, data, 0600)
}

func trimNewline(data []byte) []byte {
	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}
	return data
}
