package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckingAccount is a Girokonto: a demand-deposit account owned by one customer.
//
// Deposit and Withdraw record booking events that the caller collects with
// PullEvents once the new balance has been persisted.
type CheckingAccount struct {
	IBAN    IBAN
	Owner   CustomerNumber
	Balance Amount

	events []BookingEvent
	now    func() time.Time
}

func NewCheckingAccount(iban IBAN, owner CustomerNumber, balance Amount) *CheckingAccount {
	return &CheckingAccount{
		IBAN:    iban,
		Owner:   owner,
		Balance: balance,
	}
}

// InitialDeposit sets the opening balance of an empty account.
func (a *CheckingAccount) InitialDeposit(amount Amount) error {
	if !a.Balance.IsZero() {
		return ErrInitialDepositNotAllowed
	}
	balance, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}
	a.Balance = balance
	return nil
}

// Deposit adds a positive amount to the balance.
func (a *CheckingAccount) Deposit(amount Amount, reference string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	balance, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}
	a.Balance = balance
	a.record(BookingDeposit, amount, reference)
	return nil
}

// Withdraw removes a positive amount not exceeding the balance.
func (a *CheckingAccount) Withdraw(amount Amount, reference string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	balance, err := a.Balance.Sub(amount)
	if err != nil {
		return err
	}
	a.Balance = balance
	a.record(BookingWithdrawal, amount, reference)
	return nil
}

// Events returns the booking events recorded so far.
func (a *CheckingAccount) Events() []BookingEvent {
	return a.events
}

// PullEvents returns the recorded events and clears them.
func (a *CheckingAccount) PullEvents() []BookingEvent {
	events := a.events
	a.events = nil
	return events
}

func (a *CheckingAccount) record(kind BookingKind, amount Amount, reference string) {
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	a.events = append(a.events, BookingEvent{
		ID:         uuid.New(),
		Kind:       kind,
		IBAN:       a.IBAN,
		Amount:     amount.Value(),
		Currency:   amount.Currency(),
		Reference:  reference,
		OccurredAt: now().UTC(),
	})
}
