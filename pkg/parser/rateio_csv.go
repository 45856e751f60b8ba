package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/yurifrl/rateio/pkg/locale"
	"github.com/yurifrl/rateio/pkg/models"
)

// Column names of the rateio sheet export.
const (
	ColumnPeriod      = "Mes"
	ColumnParticipant = "Pessoa"
	ColumnAmount      = "Valor"
	ColumnPaid        = "Pago"
	ColumnPaymentDate = "DataPagamento"
)

// Header is the canonical header row, also used when exporting.
var Header = []string{ColumnPeriod, ColumnParticipant, ColumnAmount, ColumnPaid, ColumnPaymentDate}

// ParseRateioCSV parses the rateio CSV (Mes,Pessoa,Valor,Pago,DataPagamento)
// into records sorted by period, oldest first.
//
// Only a row without Mes is dropped. Unreadable amounts become zero and
// unreadable periods fall back to now's month; both are reported in the
// returned Diagnostics instead of failing the load.
func (p *Parser) ParseRateioCSV(data []byte, now time.Time) ([]*models.Record, Diagnostics) {
	var diags Diagnostics

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1 // missing cells read as blank

	header, err := r.Read()
	if err == io.EOF {
		p.logger.Debug("csv is empty")
		return []*models.Record{}, diags
	}
	if err != nil {
		diags.add(1, "", "", "unreadable header: "+err.Error())
		p.logger.Warn("failed to read csv header", "err", err)
		return []*models.Record{}, diags
	}
	cols := indexColumns(header)
	if _, ok := cols[ColumnPeriod]; !ok {
		diags.add(1, ColumnPeriod, "", "missing column")
		p.logger.Warn("csv header has no period column", "header", header)
	}

	records := make([]*models.Record, 0)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			diags.add(line, "", "", "unreadable row: "+err.Error())
			p.logger.Warn("skipping unreadable csv row", "line", line, "err", err)
			continue
		}
		line, _ := r.FieldPos(0)

		get := func(column string) string {
			i, ok := cols[column]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		label := strings.TrimSpace(get(ColumnPeriod))
		if label == "" {
			diags.add(line, ColumnPeriod, "", "row has no period, skipping")
			p.logger.Debug("row has no period, skipping", "line", line)
			continue
		}

		rawAmount := get(ColumnAmount)
		amount, ok := locale.LookupAmount(rawAmount)
		if !ok {
			diags.add(line, ColumnAmount, rawAmount, "unreadable amount, using 0")
			p.logger.Warn("invalid amount, using 0", "line", line, "value", rawAmount)
		}

		period, ok := locale.LookupPeriod(label)
		if !ok {
			period = locale.MonthOf(now)
			diags.add(line, ColumnPeriod, label, "unreadable period, using current month")
			p.logger.Warn("invalid period, using current month", "line", line, "value", label)
		}

		record, err := models.NewRecord(label).
			SetParticipant(get(ColumnParticipant)).
			SetAmount(amount).
			SetPaid(locale.ParsePaid(get(ColumnPaid))).
			SetPaymentDate(get(ColumnPaymentDate)).
			SetPeriod(period).
			SetLineNumber(line).
			Build()
		if err != nil {
			diags.add(line, "", "", err.Error())
			p.logger.Debug("failed to build record from csv line", "line", line, "err", err)
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Period().Before(records[j].Period())
	})

	p.logger.Info("rateio csv parsing complete", "records", len(records), "issues", len(diags))
	return records, diags
}

var utf8BOM = []byte("\ufeff")

// indexColumns maps cleaned header names to their position. The first
// occurrence of a repeated name wins.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := cleanHeader(h)
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func cleanHeader(h string) string {
	h = strings.ReplaceAll(h, "\ufeff", "")
	h = strings.ReplaceAll(h, `"`, "")
	return strings.TrimSpace(h)
}
