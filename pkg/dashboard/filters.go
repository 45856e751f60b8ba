package dashboard

import (
	"fmt"
	"strings"

	"github.com/yurifrl/rateio/pkg/models"
)

// Status selects records by payment state.
type Status string

const (
	StatusAll     Status = "Todos"
	StatusPaid    Status = "Pago"
	StatusPending Status = "Pendente"
)

// AllParticipants is the participant filter that matches everyone.
const AllParticipants = "Todas"

// Statuses lists the status filter options in display order.
var Statuses = []Status{StatusAll, StatusPaid, StatusPending}

// ParseStatus accepts a status option, case-insensitively. Blank means all.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusAll, nil
	}
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: must be one of %v", s, Statuses)
}

// Filters are the history selections made by the user.
type Filters struct {
	Participant string `json:"participant" yaml:"participant"`
	Status      Status `json:"status" yaml:"status"`
}

// DefaultFilters match every record.
func DefaultFilters() Filters {
	return Filters{Participant: AllParticipants, Status: StatusAll}
}

func (f Filters) allParticipants() bool {
	return f.Participant == "" || f.Participant == AllParticipants
}

// Match reports whether r passes both selections.
func (f Filters) Match(r *models.Record) bool {
	if !f.allParticipants() && r.Participant() != f.Participant {
		return false
	}
	switch f.Status {
	case StatusPaid:
		return r.Paid()
	case StatusPending:
		return !r.Paid()
	}
	return true
}
