// Package main contains the REPL frontend for the storage core. It
// uses cobra for command-line flag parsing, matching cmd/smf/main.go's
// structuring.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nosqlite-go/nosqlite/internal/command"
	"github.com/nosqlite-go/nosqlite/internal/config"
	"github.com/nosqlite-go/nosqlite/internal/engine"
)

type replFlags struct {
	configPath string
	verbose    bool
}

func main() {
	flags := &replFlags{}
	rootCmd := &cobra.Command{
		Use:   "nosqlite",
		Short: "Embeddable relational storage core REPL",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRepl(os.Stdin, os.Stdout, flags)
		},
	}
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a TOML configuration file")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRepl(in io.Reader, out io.Writer, flags *replFlags) error {
	cfg, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	eng, err := engine.New(cfg, log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "nosqlite> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		res, err := eng.Send(ctx, line)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		if res.Quit {
			return nil
		}
		printResult(out, res)
	}
}

func printResult(out io.Writer, res command.Result) {
	switch {
	case res.Context != nil:
		fmt.Fprintf(out, "database=%q schema=%q\n", res.Context.Database, res.Context.Schema)
	case res.Names != nil:
		for _, name := range res.Names {
			fmt.Fprintln(out, name)
		}
	case res.Row != nil:
		fmt.Fprintln(out, res.Row)
	default:
		fmt.Fprintln(out, res.Message)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
