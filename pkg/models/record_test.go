package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRecordBuilder(t *testing.T) {
	period := time.Date(2024, time.March, 17, 10, 0, 0, 0, time.Local)
	r, err := NewRecord("  Março, 2024 ").
		SetParticipant(" Ana ").
		SetAmount(decimal.RequireFromString("15.90")).
		SetPaid(true).
		SetPaymentDate(" 05/03/2024 ").
		SetPeriod(period).
		SetLineNumber(2).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if r.Label() != "Março, 2024" {
		t.Errorf("Expected trimmed label, got %q", r.Label())
	}
	if r.Participant() != "Ana" {
		t.Errorf("Expected trimmed participant, got %q", r.Participant())
	}
	if !r.Period().Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected first of month, got %v", r.Period())
	}
	if r.Year() != 2024 || r.Status() != StatusPaid || r.LineNumber() != 2 {
		t.Errorf("Unexpected record: %s", r)
	}
	if date, ok := r.PaymentDate(); !ok || date != "05/03/2024" {
		t.Errorf("Expected payment date, got %q (ok=%v)", date, ok)
	}
}

func TestRecordBuilderRejectsBlankLabel(t *testing.T) {
	if _, err := NewRecord("   ").SetPeriod(time.Now()).Build(); err == nil {
		t.Error("Expected error for blank label")
	}
	if _, err := NewRecord("Abril, 2024").Build(); err == nil {
		t.Error("Expected error for missing period")
	}
}

func TestRecordBlankPaymentDate(t *testing.T) {
	r, err := NewRecord("Abril, 2024").SetPeriod(time.Now()).SetPaymentDate("  ").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := r.PaymentDate(); ok {
		t.Error("Expected no payment date")
	}
	if r.Status() != StatusPending {
		t.Errorf("Expected pending, got %s", r.Status())
	}
}

func TestRecordEqual(t *testing.T) {
	build := func(line int) *Record {
		r, _ := NewRecord("Abril, 2024").
			SetParticipant("Bia").
			SetAmount(decimal.RequireFromString("20.0")).
			SetPeriod(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)).
			SetLineNumber(line).
			Build()
		return r
	}
	if !build(1).Equal(build(7)) {
		t.Error("Expected records with equal fields to be equal")
	}
	other, _ := NewRecord("Abril, 2024").SetParticipant("Bia").SetPaid(true).
		SetAmount(decimal.RequireFromString("20")).
		SetPeriod(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)).Build()
	if build(1).Equal(other) {
		t.Error("Expected paid flag to matter")
	}
}

func TestRecordMarshalJSON(t *testing.T) {
	r, _ := NewRecord("Maio, 2024").
		SetParticipant("João Câmara").
		SetAmount(decimal.RequireFromString("1234.5")).
		SetPeriod(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)).
		Build()

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got := string(data)
	for _, want := range []string{
		`"period":"Maio, 2024"`,
		`"period_date":"2024-05"`,
		`"amount":"1234.50"`,
		`"status":"Pendente"`,
		`"avatar_key":"joao-camara"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %s in %s", want, got)
		}
	}
	if strings.Contains(got, "payment_date") {
		t.Errorf("Expected payment_date to be omitted: %s", got)
	}
}
