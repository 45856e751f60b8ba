package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/rateio/pkg/dashboard"
	"github.com/yurifrl/rateio/pkg/parser"
	"github.com/yurifrl/rateio/pkg/period"
)

const sample = `Mes,Pessoa,Valor,Pago,DataPagamento
"Dezembro, 2023",Ana,"15,90",Sim,10/12/2023
"Janeiro, 2024",Ana,"15,90",Sim,08/01/2024
"Janeiro, 2024",Bia,"15,90",Não,
`

func TestDashboard(t *testing.T) {
	now := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	records, _ := parser.New(log.Default()).ParseRateioCSV([]byte(sample), now)
	current := period.Resolve(period.Labels(records), now)
	view := dashboard.Derive(records, current, dashboard.DefaultFilters())

	var buf bytes.Buffer
	if err := Dashboard(&buf, view, dashboard.InitialCollapse(records, current)); err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Mês vigente (Janeiro, 2024)",
		"R$ 31,80",
		"Pendências em aberto",
		"▼ 2024 (2)",
		"▶ 2023 (1)",
		"(vigente)",
		"08/01/2024",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "10/12/2023") {
		t.Errorf("Expected collapsed 2023 rows to be hidden:\n%s", out)
	}
}

func TestDashboardEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Dashboard(&buf, dashboard.Derive(nil, "", dashboard.DefaultFilters()), dashboard.CollapseState{}); err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Sem dados para o mês vigente.") || !strings.Contains(out, "Sem dados com esses filtros.") {
		t.Errorf("Expected empty messages:\n%s", out)
	}
}
