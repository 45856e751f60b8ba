package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/rateio/pkg/config"
	"github.com/yurifrl/rateio/pkg/csv"
	"github.com/yurifrl/rateio/pkg/dashboard"
	"github.com/yurifrl/rateio/pkg/models"
	"github.com/yurifrl/rateio/pkg/parser"
	"github.com/yurifrl/rateio/pkg/service"
	"github.com/yurifrl/rateio/pkg/source"
)

type filters struct {
	participant string
	status      string
}

func (f *filters) toFilters() (dashboard.Filters, error) {
	out := dashboard.DefaultFilters()
	if f.participant != "" {
		out.Participant = f.participant
	}
	status, err := dashboard.ParseStatus(f.status)
	if err != nil {
		return out, err
	}
	out.Status = status
	return out, nil
}

// exportHistory writes the filtered history, most recent first, as CSV.
func exportHistory(w io.Writer, records []*models.Record, f dashboard.Filters) error {
	_, err := w.Write(csv.Create(dashboard.History(records, f), nil))
	return err
}

// Loader loads one snapshot of the configured CSV for a single command run.
type Loader struct {
	cfg    *config.Config
	logger *log.Logger
}

func NewLoader(cfg *config.Config) *Loader {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rateio-cli",
		Level:           cfg.LogLevelValue(),
	})
	return &Loader{cfg: cfg, logger: logger}
}

func (l *Loader) Load(ctx context.Context) (*service.Snapshot, error) {
	fetcher := source.NewHTTPFetcher(l.logger, source.WithClient(&http.Client{Timeout: l.cfg.Timeout}))
	dash := service.New(l.cfg.CSVURL, fetcher, parser.New(l.logger), l.logger, service.WithTimeout(l.cfg.Timeout))
	snap, err := dash.Reload(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load csv: %w", err)
	}
	return snap, nil
}
