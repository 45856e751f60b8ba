package parser

import "fmt"

// Issue describes a row that was dropped or read with a fallback value.
type Issue struct {
	Line   int    `json:"line" yaml:"line"`
	Column string `json:"column,omitempty" yaml:"column,omitempty"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
}

func (i Issue) String() string {
	if i.Column == "" {
		return fmt.Sprintf("line %d: %s", i.Line, i.Reason)
	}
	return fmt.Sprintf("line %d: %s %q: %s", i.Line, i.Column, i.Value, i.Reason)
}

// Diagnostics collects the issues found while ingesting one CSV.
type Diagnostics []Issue

func (d *Diagnostics) add(line int, column, value, reason string) {
	*d = append(*d, Issue{Line: line, Column: column, Value: value, Reason: reason})
}
