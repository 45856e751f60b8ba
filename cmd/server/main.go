package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/yurifrl/rateio/pkg/config"
	"github.com/yurifrl/rateio/pkg/parser"
	"github.com/yurifrl/rateio/pkg/server"
	"github.com/yurifrl/rateio/pkg/service"
	"github.com/yurifrl/rateio/pkg/source"
)

func main() {
	flags := pflag.NewFlagSet("rateio", pflag.ExitOnError)
	cfgFile := flags.StringP("config", "c", "", "Config file (default is rateio.yaml)")
	flags.String(config.KeyPort, "3000", "Server port")
	config.Flags(flags)
	_ = flags.Parse(os.Args[1:])

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "rateio",
	})

	cfg, err := config.Build(*cfgFile, flags)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingSourceURL) {
			logger.Fatal("set RATEIO_CSV_URL to the published sheet CSV", "err", err)
		}
		logger.Fatal("invalid config", "err", err)
	}
	logger.SetLevel(cfg.LogLevelValue())

	fetcher := source.NewHTTPFetcher(logger, source.WithClient(&http.Client{Timeout: cfg.Timeout}))
	dash := service.New(cfg.CSVURL, fetcher, parser.New(logger), logger, service.WithTimeout(cfg.Timeout))

	// the page shows the error and a reload retries
	if _, err := dash.Reload(context.Background()); err != nil {
		logger.Error("initial load failed", "err", err)
	}

	srv := server.New(dash, logger)
	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	logger.Info("starting server", "addr", addr)
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
