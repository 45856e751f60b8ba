// Package render prints the dashboard to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yurifrl/rateio/pkg/dashboard"
	"github.com/yurifrl/rateio/pkg/locale"
	"github.com/yurifrl/rateio/pkg/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	paidStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	kpiStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

// Dashboard writes the current period cards, the KPIs and the history
// grouped by year. Years folded in collapsed show only their header.
func Dashboard(w io.Writer, view *dashboard.View, collapsed dashboard.CollapseState) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Rateio") + "\n\n")

	heading := "Mês vigente"
	if view.Current != "" {
		heading += " (" + view.Current + ")"
	}
	b.WriteString(titleStyle.Render(heading) + "\n")
	if len(view.CurrentPeriod) == 0 {
		b.WriteString(mutedStyle.Render("Sem dados para o mês vigente.") + "\n")
	} else {
		cards := make([]string, 0, len(view.CurrentPeriod))
		for _, r := range view.CurrentPeriod {
			cards = append(cards, card(r))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		kpiStyle.Render("Total pago (geral)\n"+locale.FormatAmount(view.TotalPaid)),
		kpiStyle.Render(fmt.Sprintf("Total membros\n%d", view.Members)),
		kpiStyle.Render(fmt.Sprintf("Pendências em aberto\n%d", view.PendingToDate)),
	) + "\n\n")

	b.WriteString(titleStyle.Render(fmt.Sprintf("Histórico (pessoa: %s, status: %s)", orAll(view.Filters.Participant), view.Filters.Status)) + "\n")
	if len(view.History) == 0 {
		b.WriteString(mutedStyle.Render("Sem dados com esses filtros.") + "\n")
	}
	for _, g := range view.ByYear {
		marker := "▼"
		if collapsed.Collapsed(g.Year) {
			marker = "▶"
		}
		b.WriteString(fmt.Sprintf("%s %d (%d)\n", marker, g.Year, len(g.Records)))
		if collapsed.Collapsed(g.Year) {
			continue
		}
		for _, r := range g.Records {
			b.WriteString("  " + historyLine(r, view.Current) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func card(r *models.Record) string {
	status := pendingStyle.Render(models.StatusPending)
	if r.Paid() {
		status = paidStyle.Render(models.StatusPaid)
	}
	return cardStyle.Render(fmt.Sprintf("%s\n%s\n%s", r.Participant(), locale.FormatAmount(r.Amount()), status))
}

func historyLine(r *models.Record, current string) string {
	date, ok := r.PaymentDate()
	if !ok {
		date = "-"
	}
	line := fmt.Sprintf("%-16s | %-20s | %14s | %-3s | %s",
		r.Label(), r.Participant(), locale.FormatAmount(r.Amount()), locale.FormatPaid(r.Paid()), date)
	if r.Label() == current {
		line += " (vigente)"
	}
	if !r.Paid() {
		return pendingStyle.Render(line)
	}
	return line
}

func orAll(participant string) string {
	if participant == "" {
		return dashboard.AllParticipants
	}
	return participant
}
