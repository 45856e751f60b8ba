package dashboard

import (
	"github.com/yurifrl/rateio/pkg/models"
	"github.com/yurifrl/rateio/pkg/period"
)

// CollapseState records which history years are folded. It is presentation
// state only; a missing year reads as expanded.
type CollapseState map[int]bool

// InitialCollapse folds every year except the one holding the current
// period.
func InitialCollapse(records []*models.Record, current string) CollapseState {
	state := make(CollapseState)
	currentYear := 0
	if d, ok := period.Date(records, current); ok {
		currentYear = d.Year()
	}
	for _, r := range records {
		state[r.Year()] = r.Year() != currentYear
	}
	return state
}

func (c CollapseState) Collapsed(year int) bool {
	return c[year]
}

// Toggle flips one year.
func (c CollapseState) Toggle(year int) {
	c[year] = !c[year]
}

// ToggleAll expands every group when all of them are folded, otherwise folds
// them all. The result covers only the given groups.
func (c CollapseState) ToggleAll(groups []YearGroup) CollapseState {
	allCollapsed := true
	for _, g := range groups {
		if !c[g.Year] {
			allCollapsed = false
			break
		}
	}
	next := make(CollapseState, len(groups))
	for _, g := range groups {
		next[g.Year] = !allCollapsed
	}
	return next
}
