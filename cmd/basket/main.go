package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/noah-isme/widget-basket/internal/config"
	"github.com/noah-isme/widget-basket/internal/console"
	"github.com/noah-isme/widget-basket/internal/obs"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("basket", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	quoteCodes := flags.StringSlice("quote", nil, "price the given comma separated product codes and exit")
	noColor := flags.Bool("no-color", false, "disable ANSI colors")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := obs.NewLoggerTo(stderr, cfg.LogFormatOr("console"), cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	cat, err := cfg.Catalog()
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	c, err := console.New(console.Config{
		In:        stdin,
		Out:       stdout,
		Catalog:   cat,
		NewBasket: cfg.NewBasket,
		Logger:    logger,
		NoColor:   *noColor || os.Getenv("NO_COLOR") != "",
	})
	if err != nil {
		return err
	}

	if len(*quoteCodes) > 0 {
		return c.Quote(*quoteCodes)
	}
	logger.Debug().Int("products", cat.Len()).Msg("console starting")
	return c.Run(ctx)
}
