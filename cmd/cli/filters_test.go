package main

import (
	"bytes"
	"testing"

	"github.com/yurifrl/rateio/pkg/dashboard"
	"github.com/yurifrl/rateio/pkg/locale"
	"github.com/yurifrl/rateio/pkg/models"
)

func TestFiltersToFilters(t *testing.T) {
	tests := []struct {
		name    string
		in      filters
		want    dashboard.Filters
		wantErr bool
	}{
		{name: "defaults", in: filters{}, want: dashboard.DefaultFilters()},
		{name: "participant and status", in: filters{participant: "Ana", status: "pago"}, want: dashboard.Filters{Participant: "Ana", Status: dashboard.StatusPaid}},
		{name: "invalid status", in: filters{status: "talvez"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.toFilters()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestExportHistory(t *testing.T) {
	build := func(label, participant string, paid bool) *models.Record {
		period, ok := locale.LookupPeriod(label)
		if !ok {
			t.Fatalf("bad period %q", label)
		}
		r, err := models.NewRecord(label).SetParticipant(participant).SetPaid(paid).SetPeriod(period).Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		return r
	}
	records := []*models.Record{
		build("Janeiro, 2024", "Ana", false),
		build("Fevereiro, 2024", "Ana", true),
		build("Março, 2024", "Bia", false),
		build("Março, 2024", "Ana", false),
	}

	var buf bytes.Buffer
	f := filters{status: "Pendente"}
	df, err := f.toFilters()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := exportHistory(&buf, records, df); err != nil {
		t.Fatalf("exportHistory failed: %v", err)
	}

	expected := "Mes,Pessoa,Valor,Pago,DataPagamento\n" +
		"\"Março, 2024\",Bia,\"0,00\",Não,\n" +
		"\"Março, 2024\",Ana,\"0,00\",Não,\n" +
		"\"Janeiro, 2024\",Ana,\"0,00\",Não,\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}
