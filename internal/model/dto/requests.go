// Package dto holds the request payloads and response bodies of the HTTP API.
package dto

import (
	"github.com/deppfellow/go-banking/internal/validation"
	"github.com/shopspring/decimal"
)

// ListPayload is used by endpoints without input.
type ListPayload struct{}

func (p *ListPayload) Validate() error { return nil }

type CustomerNumberPayload struct {
	CustomerNumber string `param:"customerNumber" validate:"required,customer_number"`
}

func (p *CustomerNumberPayload) Validate() error { return validation.Struct(p) }

type CreateCustomerPayload struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

func (p *CreateCustomerPayload) Validate() error { return validation.Struct(p) }

type IBANPayload struct {
	IBAN string `param:"iban" validate:"required,iban"`
}

func (p *IBANPayload) Validate() error { return validation.Struct(p) }

type CreateAccountPayload struct {
	CustomerNumber string          `json:"customerNumber" validate:"required,customer_number"`
	IBAN           string          `json:"iban" validate:"required,iban"`
	Balance        decimal.Decimal `json:"balance" validate:"decimal_gte=0,decimal_scale=2"`
}

func (p *CreateAccountPayload) Validate() error { return validation.Struct(p) }

// AmountPayload is the body of deposit and withdraw; the IBAN comes from the path.
type AmountPayload struct {
	IBAN   string          `param:"iban" validate:"required,iban"`
	Amount decimal.Decimal `json:"amount" validate:"decimal_gt=0,decimal_scale=2"`
}

func (p *AmountPayload) Validate() error { return validation.Struct(p) }

type TransferPayload struct {
	FromIBAN string          `json:"fromIban" validate:"required,iban"`
	ToIBAN   string          `json:"toIban" validate:"required,iban"`
	Amount   decimal.Decimal `json:"amount" validate:"decimal_gt=0,decimal_scale=2"`
}

func (p *TransferPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if p.FromIBAN != "" && sameIBAN(p.FromIBAN, p.ToIBAN) {
		return validation.CustomValidationErrors{{
			Field:   "toIban",
			Message: "must differ from fromIban",
		}}
	}
	return nil
}
