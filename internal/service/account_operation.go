package service

import (
	"context"
	"errors"

	"github.com/deppfellow/go-banking/internal/lib/job"
	"github.com/deppfellow/go-banking/internal/model"
	"github.com/deppfellow/go-banking/internal/repository"
	"github.com/deppfellow/go-banking/internal/result"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransferReceipt describes a completed transfer. From and To hold the
// balances after the transfer.
type TransferReceipt struct {
	Reference uuid.UUID
	From      *model.CheckingAccount
	To        *model.CheckingAccount
	Amount    model.Amount
}

type AccountOperationService struct {
	repos     *repository.Repositories
	publisher job.Publisher
	logger    *zerolog.Logger
}

func NewAccountOperationService(repos *repository.Repositories, publisher job.Publisher, logger *zerolog.Logger) *AccountOperationService {
	return &AccountOperationService{
		repos:     repos,
		publisher: publisher,
		logger:    logger,
	}
}

// Deposit credits value to the account and returns it with the new balance.
func (s *AccountOperationService) Deposit(ctx context.Context, iban model.IBAN, value decimal.Decimal) (*model.CheckingAccount, error) {
	amount, err := operationAmount(value)
	if err != nil {
		return nil, err
	}

	account, err := s.change(ctx, iban, func(a *model.CheckingAccount) error {
		return a.Deposit(amount, "")
	})
	if err != nil {
		s.logFailure(err, "deposit", iban)
		return nil, operationError(err, model.ErrDepositFailed)
	}

	s.publish(ctx, account.PullEvents())
	return account, nil
}

// Withdraw debits value from the account. The balance may not go below zero.
func (s *AccountOperationService) Withdraw(ctx context.Context, iban model.IBAN, value decimal.Decimal) (*model.CheckingAccount, error) {
	amount, err := operationAmount(value)
	if err != nil {
		return nil, err
	}

	account, err := s.change(ctx, iban, func(a *model.CheckingAccount) error {
		return a.Withdraw(amount, "")
	})
	if err != nil {
		s.logFailure(err, "withdrawal", iban)
		return nil, operationError(err, model.ErrWithdrawalFailed)
	}

	s.publish(ctx, account.PullEvents())
	return account, nil
}

// Transfer moves value from one account to another. Both balances change in
// one transaction or not at all.
func (s *AccountOperationService) Transfer(ctx context.Context, from, to model.IBAN, value decimal.Decimal) (*TransferReceipt, error) {
	if from == to {
		return nil, model.ErrSameAccountTransfer
	}

	amount, err := operationAmount(value)
	if err != nil {
		return nil, err
	}

	receipt := &TransferReceipt{Reference: uuid.New(), Amount: amount}
	reference := receipt.Reference.String()

	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		source, target, err := lockPair(ctx, tx, from, to)
		if err != nil {
			return err
		}

		if err := source.Withdraw(amount, reference); err != nil {
			return err
		}
		if err := target.Deposit(amount, reference); err != nil {
			return err
		}

		if err := tx.Accounts.UpdateBalance(ctx, source); err != nil {
			return err
		}
		if err := tx.Accounts.UpdateBalance(ctx, target); err != nil {
			return err
		}

		receipt.From, receipt.To = source, target
		return nil
	})
	if err != nil {
		s.logFailure(err, "transfer", from)
		return nil, operationError(err, model.ErrTransferFailed)
	}

	s.logger.Info().
		Str("reference", reference).
		Str("from", from.String()).
		Str("to", to.String()).
		Str("amount", amount.String()).
		Msg("transfer completed")

	s.publish(ctx, append(receipt.From.PullEvents(), receipt.To.PullEvents()...))
	return receipt, nil
}

// Bookings returns the journal of an existing account.
func (s *AccountOperationService) Bookings(ctx context.Context, iban model.IBAN) ([]model.Booking, error) {
	exists, err := s.repos.Accounts.Exists(ctx, iban)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrAccountNotFound
	}

	return s.repos.Bookings.ListByIBAN(ctx, iban)
}

// change loads the account under a row lock, applies fn and persists the
// new balance in one transaction.
func (s *AccountOperationService) change(ctx context.Context, iban model.IBAN, fn func(*model.CheckingAccount) error) (*model.CheckingAccount, error) {
	var account *model.CheckingAccount

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		a, err := tx.Accounts.GetByIBANForUpdate(ctx, iban)
		if err != nil {
			return err
		}
		if err := fn(a); err != nil {
			return err
		}
		if err := tx.Accounts.UpdateBalance(ctx, a); err != nil {
			return err
		}
		account = a
		return nil
	})

	return account, err
}

// lockPair locks both accounts in IBAN order so concurrent transfers in
// opposite directions cannot deadlock.
func lockPair(ctx context.Context, tx *repository.Repositories, from, to model.IBAN) (*model.CheckingAccount, *model.CheckingAccount, error) {
	first, second := from, to
	if second < first {
		first, second = second, first
	}

	a, err := tx.Accounts.GetByIBANForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := tx.Accounts.GetByIBANForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if first == from {
		return a, b, nil
	}
	return b, a, nil
}

func operationAmount(value decimal.Decimal) (model.Amount, error) {
	if !value.IsPositive() {
		return model.Amount{}, model.ErrInvalidAmount
	}
	return model.EuroAmount(value)
}

// operationError maps a failed balance change to the error reported to the
// caller: insufficient balance and unknown accounts keep their meaning,
// everything else becomes fallback.
func operationError(err error, fallback result.Error) error {
	switch {
	case errors.Is(err, model.ErrInsufficientBalance):
		return model.ErrInsufficientBalance
	case repository.IsNotFound(err):
		return model.ErrAccountNotFound
	default:
		return fallback
	}
}

func (s *AccountOperationService) logFailure(err error, operation string, iban model.IBAN) {
	event := s.logger.Warn()
	if _, ok := result.AsError(err); !ok && !repository.IsNotFound(err) {
		event = s.logger.Error()
	}
	event.Err(err).Str("operation", operation).Str("iban", iban.String()).Msg("account operation failed")
}

// publish hands events to the journal. The balance change is already
// committed, so a publishing failure is logged and not returned.
func (s *AccountOperationService) publish(ctx context.Context, events []model.BookingEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error().Err(err).Int("events", len(events)).Msg("failed to publish booking events")
	}
}
