// Package period picks the period the dashboard treats as current.
package period

import (
	"sort"
	"time"

	"github.com/yurifrl/rateio/pkg/locale"
	"github.com/yurifrl/rateio/pkg/models"
)

// Resolve returns the label for ref's month when it is one of labels,
// otherwise the latest label by period date. It returns "" when labels is
// empty.
func Resolve(labels []string, ref time.Time) string {
	distinct := dedupe(labels)
	if len(distinct) == 0 {
		return ""
	}

	currentLabel := locale.FormatPeriod(ref)
	for _, label := range distinct {
		if label == currentLabel {
			return label
		}
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		return locale.ParsePeriod(distinct[i], ref).Before(locale.ParsePeriod(distinct[j], ref))
	})
	return distinct[len(distinct)-1]
}

// Labels lists the distinct period labels of records in first-seen order.
func Labels(records []*models.Record) []string {
	labels := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.Label()] {
			continue
		}
		seen[r.Label()] = true
		labels = append(labels, r.Label())
	}
	return labels
}

// Date returns the period date of the first record labelled label.
func Date(records []*models.Record, label string) (time.Time, bool) {
	if label == "" {
		return time.Time{}, false
	}
	for _, r := range records {
		if r.Label() == label {
			return r.Period(), true
		}
	}
	return time.Time{}, false
}

func dedupe(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
