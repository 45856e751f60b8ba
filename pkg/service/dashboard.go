package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/rateio/pkg/dashboard"
	"github.com/yurifrl/rateio/pkg/models"
	"github.com/yurifrl/rateio/pkg/parser"
	"github.com/yurifrl/rateio/pkg/period"
	"github.com/yurifrl/rateio/pkg/source"
)

// Snapshot is the result of one successful load. It is never modified after
// being published; a reload publishes a new one.
type Snapshot struct {
	Seq         uint64             `json:"seq" yaml:"seq"`
	Records     []*models.Record   `json:"records" yaml:"records"`
	Current     string             `json:"current" yaml:"current"`
	Diagnostics parser.Diagnostics `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	LoadedAt    time.Time          `json:"loaded_at" yaml:"loaded_at"`
}

// View derives the dashboard for filters.
func (s *Snapshot) View(filters dashboard.Filters) *dashboard.View {
	return dashboard.Derive(s.Records, s.Current, filters)
}

// Collapse returns the initial year folding for this snapshot.
func (s *Snapshot) Collapse() dashboard.CollapseState {
	return dashboard.InitialCollapse(s.Records, s.Current)
}

var emptySnapshot = &Snapshot{Records: []*models.Record{}}

// Dashboard owns the loaded record set. Readers always see one complete
// snapshot; reloads replace it as a whole.
type Dashboard struct {
	url     string
	timeout time.Duration
	fetcher source.Fetcher
	parser  *parser.Parser
	logger  *log.Logger
	now     func() time.Time

	seq      atomic.Uint64
	snapshot atomic.Pointer[Snapshot]

	mu      sync.Mutex
	lastErr error
	errSeq  uint64 // load that last set lastErr
}

type Option func(*Dashboard)

// WithClock replaces time.Now for period resolution and fallbacks.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// WithTimeout bounds each fetch. Zero means no bound.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dashboard) { d.timeout = timeout }
}

func New(url string, fetcher source.Fetcher, p *parser.Parser, logger *log.Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		url:     url,
		fetcher: fetcher,
		parser:  p,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Snapshot returns the published snapshot, an empty one before the first
// successful load.
func (d *Dashboard) Snapshot() *Snapshot {
	if s := d.snapshot.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

// LastError is the error of the most recent load, nil once a load succeeds.
func (d *Dashboard) LastError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Reload fetches and ingests the CSV and publishes the result.
//
// Every call takes a sequence number when it starts. When loads overlap, a
// completion older than the published snapshot is dropped and the newer
// snapshot is returned instead. A failed fetch leaves the published snapshot
// in place.
func (d *Dashboard) Reload(ctx context.Context) (*Snapshot, error) {
	seq := d.seq.Add(1)
	d.logger.Debug("loading csv", "seq", seq)

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	data, err := d.fetcher.Fetch(ctx, d.url)
	if err != nil {
		d.logger.Error("failed to load csv", "seq", seq, "err", err)
		d.setError(seq, err)
		return d.Snapshot(), fmt.Errorf("reload: %w", err)
	}

	now := d.now()
	records, diags := d.parser.ParseRateioCSV(data, now)
	next := &Snapshot{
		Seq:         seq,
		Records:     records,
		Current:     period.Resolve(period.Labels(records), now),
		Diagnostics: diags,
		LoadedAt:    now,
	}

	for {
		published := d.snapshot.Load()
		if published != nil && published.Seq > seq {
			d.logger.Warn("discarding stale load", "seq", seq, "published", published.Seq)
			return published, nil
		}
		if d.snapshot.CompareAndSwap(published, next) {
			break
		}
	}
	d.setError(seq, nil)

	d.logger.Info("csv loaded", "seq", seq, "records", len(records), "current", next.Current, "issues", len(diags))
	return next, nil
}

// setError records the outcome of load seq unless a newer load already
// published a snapshot or recorded its own outcome.
func (d *Dashboard) setError(seq uint64, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s := d.snapshot.Load(); s != nil && s.Seq > seq {
		return
	}
	if seq < d.errSeq {
		return
	}
	d.lastErr = err
	d.errSeq = seq
}
