/*
   Copyright The Rgzip Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/containerd/log"
	"github.com/opencontainers/go-digest"
	"github.com/rgzip/rgzip/config"
	"github.com/rgzip/rgzip/gunzip"
	"github.com/rgzip/rgzip/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "rgzip",
		Usage:     "decompress a gzip file",
		ArgsUsage: "<file.gz>",
		Version:   fmt.Sprintf("%s %s", version.Version, version.Revision),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the configuration file",
				Value:   config.DefaultConfigPath,
				EnvVars: []string{"RGZIP_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "file to write decompressed output to; defaults to the input name without its .gz suffix, or stdout for stdin input",
			},
			&cli.BoolFlag{
				Name:    "stdout",
				Aliases: []string{"c"},
				Usage:   "write decompressed output to stdout",
			},
			&cli.Int64Flag{
				Name:  "limit",
				Usage: "maximum decompressed size in bytes, 0 for unlimited (overrides config)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "digest",
				Usage: "print the digest of the decompressed output to stderr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "set the logging level [trace, debug, info, warn, error]",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rgzip: %v\n", err)
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	cfg, err := config.NewConfigFromToml(cliCtx.String("config"))
	if err != nil {
		return err
	}

	logLevel := cfg.LogLevel
	if v := cliCtx.String("log-level"); v != "" {
		logLevel = v
	}
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	if cliCtx.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", cliCtx.NArg())
	}
	input := cliCtx.Args().First()

	limit := cfg.MaxDecompressedSize
	if v := cliCtx.Int64("limit"); v >= 0 {
		limit = v
	}

	var data []byte
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	out, hdr, err := gunzip.DecompressHeader(data, limit)
	if err != nil {
		return err
	}

	log.L.WithFields(logrus.Fields{
		"input":      input,
		"compressed": len(data),
		"size":       len(out),
		"name":       hdr.Name,
		"modtime":    hdr.ModTime,
		"os":         hdr.OS,
	}).Debug("decompressed gzip member")

	if cliCtx.Bool("digest") {
		fmt.Fprintln(os.Stderr, digest.FromBytes(out).String())
	}

	dest := cliCtx.String("output")
	if cliCtx.Bool("stdout") || (dest == "" && input == "-") {
		_, err := os.Stdout.Write(out)
		return err
	}
	if dest == "" {
		dest = strings.TrimSuffix(input, ".gz")
		if dest == input {
			return fmt.Errorf("cannot derive output name from %q; use --output", input)
		}
	}
	if err := os.WriteFile(dest, out, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
