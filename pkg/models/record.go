package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/rateio/pkg/locale"
)

const (
	StatusPaid    = "Pago"
	StatusPending = "Pendente"
)

// Record is one participant's share for one period. Fields are only reachable
// through getters; a built Record never changes.
type Record struct {
	label       string
	participant string
	amount      decimal.Decimal
	paid        bool
	paymentDate string
	period      time.Time
	lineNumber  int
}

// RecordBuilder assembles a Record field by field.
type RecordBuilder struct {
	record Record
}

func NewRecord(label string) *RecordBuilder {
	return &RecordBuilder{record: Record{label: strings.TrimSpace(label)}}
}

func (b *RecordBuilder) SetParticipant(name string) *RecordBuilder {
	b.record.participant = strings.TrimSpace(name)
	return b
}

func (b *RecordBuilder) SetAmount(amount decimal.Decimal) *RecordBuilder {
	b.record.amount = amount
	return b
}

func (b *RecordBuilder) SetPaid(paid bool) *RecordBuilder {
	b.record.paid = paid
	return b
}

// SetPaymentDate stores free text; blank means no payment date.
func (b *RecordBuilder) SetPaymentDate(date string) *RecordBuilder {
	b.record.paymentDate = strings.TrimSpace(date)
	return b
}

// SetPeriod stores the resolved month; any day or clock part is dropped.
func (b *RecordBuilder) SetPeriod(period time.Time) *RecordBuilder {
	b.record.period = time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC)
	return b
}

func (b *RecordBuilder) SetLineNumber(line int) *RecordBuilder {
	b.record.lineNumber = line
	return b
}

func (b *RecordBuilder) Build() (*Record, error) {
	if b.record.label == "" {
		return nil, fmt.Errorf("record has no period label")
	}
	if b.record.period.IsZero() {
		return nil, fmt.Errorf("record %q has no period date", b.record.label)
	}
	r := b.record
	return &r, nil
}

func (r *Record) Label() string           { return r.label }
func (r *Record) Participant() string     { return r.participant }
func (r *Record) Amount() decimal.Decimal { return r.amount }
func (r *Record) Paid() bool              { return r.paid }
func (r *Record) Period() time.Time       { return r.period }
func (r *Record) Year() int               { return r.period.Year() }
func (r *Record) LineNumber() int         { return r.lineNumber }

// PaymentDate returns the payment date text and whether one was given.
func (r *Record) PaymentDate() (string, bool) {
	return r.paymentDate, r.paymentDate != ""
}

// Status is "Pago" or "Pendente".
func (r *Record) Status() string {
	if r.paid {
		return StatusPaid
	}
	return StatusPending
}

// Equal compares field values, ignoring the source line number.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.label == other.label &&
		r.participant == other.participant &&
		r.amount.Equal(other.amount) &&
		r.paid == other.paid &&
		r.paymentDate == other.paymentDate &&
		r.period.Equal(other.period)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s | %s | %s | %s", r.label, r.participant, r.amount.StringFixed(2), r.Status())
}

type recordJSON struct {
	Period      string  `json:"period" yaml:"period"`
	PeriodDate  string  `json:"period_date" yaml:"period_date"`
	Participant string  `json:"participant" yaml:"participant"`
	Amount      string  `json:"amount" yaml:"amount"`
	Paid        bool    `json:"paid" yaml:"paid"`
	Status      string  `json:"status" yaml:"status"`
	PaymentDate *string `json:"payment_date,omitempty" yaml:"payment_date,omitempty"`
	AvatarKey   string  `json:"avatar_key,omitempty" yaml:"avatar_key,omitempty"`
}

func (r *Record) export() recordJSON {
	out := recordJSON{
		Period:      r.label,
		PeriodDate:  r.period.Format("2006-01"),
		Participant: r.participant,
		Amount:      r.amount.StringFixed(2),
		Paid:        r.paid,
		Status:      r.Status(),
		AvatarKey:   r.AvatarKey(),
	}
	if date, ok := r.PaymentDate(); ok {
		out.PaymentDate = &date
	}
	return out
}

// AvatarKey is the stable asset key for the record's participant.
func (r *Record) AvatarKey() string {
	return locale.Slugify(r.participant)
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.export())
}

func (r *Record) MarshalYAML() (interface{}, error) {
	return r.export(), nil
}
