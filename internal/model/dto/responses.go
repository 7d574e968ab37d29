package dto

import (
	"time"

	"github.com/deppfellow/go-banking/internal/mapper"
	"github.com/deppfellow/go-banking/internal/model"
	"github.com/google/uuid"
)

type CustomerResponse struct {
	CustomerNumber string `json:"customerNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

// Balances are rendered with two decimals as strings, e.g. "1000.50".
type AccountResponse struct {
	IBAN           string `json:"iban"`
	CustomerNumber string `json:"customerNumber"`
	Balance        string `json:"balance"`
	Currency       string `json:"currency"`
}

type AccountDetailsResponse struct {
	AccountResponse
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type BalanceResponse struct {
	IBAN     string `json:"iban"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type TransferResponse struct {
	Reference string `json:"reference"`
	FromIBAN  string `json:"fromIban"`
	ToIBAN    string `json:"toIban"`
	Amount    string `json:"amount"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
}

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	IBAN      string    `json:"iban"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	Reference string    `json:"reference,omitempty"`
	BookedAt  time.Time `json:"bookedAt"`
}

var (
	CustomerMapper = mapper.New(
		func(c model.Customer) CustomerResponse {
			return CustomerResponse{
				CustomerNumber: c.Number.String(),
				FirstName:      c.FirstName,
				LastName:       c.LastName,
			}
		},
		func(r CustomerResponse) model.Customer {
			return model.Customer{
				Number:    model.CustomerNumber(r.CustomerNumber),
				FirstName: r.FirstName,
				LastName:  r.LastName,
			}
		},
	)

	AccountMapper = mapper.New(
		func(a model.CheckingAccount) AccountResponse {
			return AccountResponse{
				IBAN:           a.IBAN.String(),
				CustomerNumber: a.Owner.String(),
				Balance:        a.Balance.Value().StringFixed(2),
				Currency:       string(a.Balance.Currency()),
			}
		},
		nil,
	)

	// AccountDetailsMapper joins an account with its owner.
	AccountDetailsMapper = mapper.NewDual(
		func(c model.Customer, a model.CheckingAccount) AccountDetailsResponse {
			return AccountDetailsResponse{
				AccountResponse: AccountMapper.ToOutput(a),
				FirstName:       c.FirstName,
				LastName:        c.LastName,
			}
		},
	)

	BookingMapper = mapper.New(
		func(b model.Booking) BookingResponse {
			return BookingResponse{
				ID:        b.ID,
				IBAN:      b.IBAN.String(),
				Kind:      string(b.Kind),
				Amount:    b.Amount.Value().StringFixed(2),
				Currency:  string(b.Amount.Currency()),
				Reference: b.Reference,
				BookedAt:  b.BookedAt,
			}
		},
		nil,
	)
)

func NewBalanceResponse(a model.CheckingAccount) BalanceResponse {
	return BalanceResponse{
		IBAN:     a.IBAN.String(),
		Balance:  a.Balance.Value().StringFixed(2),
		Currency: string(a.Balance.Currency()),
	}
}

func sameIBAN(a, b string) bool {
	return model.NormalizeIBAN(a) == model.NormalizeIBAN(b)
}
