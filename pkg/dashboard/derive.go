// Package dashboard derives the views shown by the rateio dashboard from an
// ingested record set. Every function here is pure: inputs are never
// modified and results are new slices sharing the same *models.Record values.
package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yurifrl/rateio/pkg/models"
	"github.com/yurifrl/rateio/pkg/period"
)

// YearGroup is one calendar year of the filtered history.
type YearGroup struct {
	Year    int              `json:"year" yaml:"year"`
	Records []*models.Record `json:"records" yaml:"records"`
}

// View is everything the presentation layer shows for one set of inputs.
type View struct {
	Current       string           `json:"current" yaml:"current"`
	CurrentPeriod []*models.Record `json:"current_period" yaml:"current_period"`
	TotalPaid     decimal.Decimal  `json:"total_paid" yaml:"total_paid"`
	Members       int              `json:"members" yaml:"members"`
	PendingToDate int              `json:"pending_to_date" yaml:"pending_to_date"`
	Participants  []string         `json:"participants" yaml:"participants"`
	Filters       Filters          `json:"filters" yaml:"filters"`
	History       []*models.Record `json:"history" yaml:"history"`
	ByYear        []YearGroup      `json:"by_year" yaml:"by_year"`
}

// Derive computes every view for records, the current period label and the
// active filters.
func Derive(records []*models.Record, current string, filters Filters) *View {
	history := History(records, filters)
	return &View{
		Current:       current,
		CurrentPeriod: CurrentPeriod(records, current),
		TotalPaid:     TotalPaid(records),
		Members:       MemberCount(records),
		PendingToDate: PendingToDate(records, current),
		Participants:  Participants(records),
		Filters:       filters,
		History:       history,
		ByYear:        GroupByYear(history),
	}
}

// History filters records by participant and status and orders them most
// recent first. Records of the same period keep their relative order.
func History(records []*models.Record, filters Filters) []*models.Record {
	rows := make([]*models.Record, 0, len(records))
	for _, r := range records {
		if filters.Match(r) {
			rows = append(rows, r)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Period().After(rows[j].Period())
	})
	return rows
}

// GroupByYear splits history by calendar year. Groups appear in the order
// their first record appears in history.
func GroupByYear(history []*models.Record) []YearGroup {
	groups := make([]YearGroup, 0)
	index := make(map[int]int)
	for _, r := range history {
		i, ok := index[r.Year()]
		if !ok {
			i = len(groups)
			index[r.Year()] = i
			groups = append(groups, YearGroup{Year: r.Year()})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// TotalPaid sums the amounts of every paid record.
func TotalPaid(records []*models.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.Paid() {
			total = total.Add(r.Amount())
		}
	}
	return total
}

// MemberCount counts distinct participants.
func MemberCount(records []*models.Record) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Participant()] = struct{}{}
	}
	return len(seen)
}

// PendingToDate counts unpaid records up to and including the current
// period. It is 0 when there is no current period.
func PendingToDate(records []*models.Record, current string) int {
	cutoff, ok := period.Date(records, current)
	if !ok {
		return 0
	}
	n := 0
	for _, r := range records {
		if !r.Paid() && !r.Period().After(cutoff) {
			n++
		}
	}
	return n
}

// CurrentPeriod returns the records labelled current.
func CurrentPeriod(records []*models.Record, current string) []*models.Record {
	out := make([]*models.Record, 0)
	if current == "" {
		return out
	}
	for _, r := range records {
		if r.Label() == current {
			out = append(out, r)
		}
	}
	return out
}

// Participants lists distinct participant names in Portuguese collation
// order, preceded by AllParticipants.
func Participants(records []*models.Record) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, r := range records {
		if seen[r.Participant()] {
			continue
		}
		seen[r.Participant()] = true
		names = append(names, r.Participant())
	}
	collate.New(language.BrazilianPortuguese).SortStrings(names)
	return append([]string{AllParticipants}, names...)
}
