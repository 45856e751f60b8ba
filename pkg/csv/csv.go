package csv

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/rateio/pkg/locale"
)

// Record is what the exporter needs from a ledger row.
type Record interface {
	Label() string
	Participant() string
	Amount() decimal.Decimal
	Paid() bool
	PaymentDate() (string, bool)
}

type FilterFunc[T Record] func(T) bool

var header = []string{"Mes", "Pessoa", "Valor", "Pago", "DataPagamento"}

// Create writes records in the same layout the dashboard reads, so an
// export can be fed back as a source.
func Create[T Record](records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		date, _ := r.PaymentDate()
		_ = w.Write([]string{
			r.Label(),
			r.Participant(),
			formatValue(r.Amount()),
			locale.FormatPaid(r.Paid()),
			date,
		})
	}
	w.Flush()
	return buf.Bytes()
}

// formatValue is FormatAmount without the currency symbol.
func formatValue(amount decimal.Decimal) string {
	sign, value, found := strings.Cut(locale.FormatAmount(amount), "R$ ")
	if !found {
		return value
	}
	return sign + value
}
