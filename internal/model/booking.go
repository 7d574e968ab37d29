package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingKind string

const (
	BookingDeposit    BookingKind = "deposit"
	BookingWithdrawal BookingKind = "withdrawal"
)

// BookingEvent is raised by a checking account when money moves.
type BookingEvent struct {
	ID         uuid.UUID       `json:"id"`
	Kind       BookingKind     `json:"kind"`
	IBAN       IBAN            `json:"iban"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   Currency        `json:"currency"`
	Reference  string          `json:"reference,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// Booking is a journal entry persisted from a BookingEvent.
type Booking struct {
	ID        uuid.UUID
	IBAN      IBAN
	Kind      BookingKind
	Amount    Amount
	Reference string
	BookedAt  time.Time
}

func BookingFromEvent(e BookingEvent) (Booking, error) {
	amount, err := NewAmount(e.Amount, e.Currency)
	if err != nil {
		return Booking{}, err
	}
	return Booking{
		ID:        e.ID,
		IBAN:      e.IBAN,
		Kind:      e.Kind,
		Amount:    amount,
		Reference: e.Reference,
		BookedAt:  e.OccurredAt,
	}, nil
}
