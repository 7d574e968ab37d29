package service

import (
	"context"

	"github.com/deppfellow/go-banking/internal/model"
	"github.com/deppfellow/go-banking/internal/repository"
	"github.com/deppfellow/go-banking/internal/result"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// customerNumberAttempts bounds retries when a generated number is taken.
const customerNumberAttempts = 3

type AccountOpeningService struct {
	repos  *repository.Repositories
	logger *zerolog.Logger
}

func NewAccountOpeningService(repos *repository.Repositories, logger *zerolog.Logger) *AccountOpeningService {
	return &AccountOpeningService{repos: repos, logger: logger}
}

// ListCustomers fails with ErrCustomerListNotLoaded when there is nothing
// to list.
func (s *AccountOpeningService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.repos.Customers.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load customers")
		return nil, model.ErrCustomerListNotLoaded
	}

	return result.WhenListHasEntries(result.Create(customers)).
		WithError(model.ErrCustomerListNotLoaded).
		Unwrap()
}

func (s *AccountOpeningService) GetCustomer(ctx context.Context, number model.CustomerNumber) (*model.Customer, error) {
	customer, err := s.repos.Customers.GetByNumber(ctx, number)
	if repository.IsNotFound(err) {
		return nil, model.ErrCustomerNotFound
	}
	return customer, err
}

// ListCustomerAccounts lists the accounts of an existing customer.
func (s *AccountOpeningService) ListCustomerAccounts(ctx context.Context, number model.CustomerNumber) ([]*model.CheckingAccount, error) {
	exists, err := s.repos.Customers.Exists(ctx, number)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrCustomerNotFound
	}

	accounts, err := s.repos.Accounts.ListByCustomer(ctx, number)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_number", number.String()).Msg("failed to load accounts")
		return nil, model.ErrAccountListNotLoaded
	}

	return result.WhenListHasEntries(result.Create(accounts)).
		WithError(model.ErrAccountListNotLoaded).
		Unwrap()
}

// CreateCustomer opens a customer under a newly generated customer number.
func (s *AccountOpeningService) CreateCustomer(ctx context.Context, firstName, lastName string) (*model.Customer, error) {
	for attempt := 0; attempt < customerNumberAttempts; attempt++ {
		customer, err := model.NewCustomer(model.NewCustomerNumber(), firstName, lastName)
		if err != nil {
			return nil, err
		}

		exists, err := s.repos.Customers.Exists(ctx, customer.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		if err := s.repos.Customers.Create(ctx, customer); err != nil {
			s.logger.Error().Err(err).Str("customer_number", customer.Number.String()).Msg("failed to create customer")
			return nil, model.ErrCustomerNotCreated
		}

		s.logger.Info().Str("customer_number", customer.Number.String()).Msg("customer created")
		return customer, nil
	}

	return nil, model.ErrCustomerNotCreated
}

func (s *AccountOpeningService) ListAccounts(ctx context.Context) ([]*model.CheckingAccount, error) {
	accounts, err := s.repos.Accounts.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load accounts")
		return nil, model.ErrAccountListNotLoaded
	}

	return result.WhenListHasEntries(result.Create(accounts)).
		WithError(model.ErrAccountListNotLoaded).
		Unwrap()
}

// GetAccount returns an account together with its owner.
func (s *AccountOpeningService) GetAccount(ctx context.Context, iban model.IBAN) (*model.Customer, *model.CheckingAccount, error) {
	customer, account, err := s.repos.Accounts.GetWithOwner(ctx, iban)
	if repository.IsNotFound(err) {
		return nil, nil, model.ErrAccountNotFound
	}
	return customer, account, err
}

// CreateAccount opens a checking account for an existing customer with
// balance as initial deposit.
func (s *AccountOpeningService) CreateAccount(
	ctx context.Context,
	number model.CustomerNumber,
	iban model.IBAN,
	balance decimal.Decimal,
) (*model.CheckingAccount, error) {
	opening, err := model.EuroAmount(balance)
	if err != nil {
		return nil, err
	}

	customerExists, err := s.repos.Customers.Exists(ctx, number)
	if err != nil {
		return nil, err
	}
	if !customerExists {
		return nil, model.ErrCustomerNotFound
	}

	accountExists, err := s.repos.Accounts.Exists(ctx, iban)
	if err != nil {
		return nil, err
	}
	if accountExists {
		return nil, model.ErrAccountAlreadyExists
	}

	account := model.NewCheckingAccount(iban, number, model.ZeroAmount(model.DefaultCurrency))
	if err := account.InitialDeposit(opening); err != nil {
		return nil, err
	}

	if err := s.repos.Accounts.Create(ctx, account); err != nil {
		if repository.IsDuplicate(err) {
			return nil, model.ErrAccountAlreadyExists
		}
		s.logger.Error().Err(err).Str("iban", iban.String()).Msg("failed to create account")
		return nil, model.ErrAccountNotCreated
	}

	s.logger.Info().
		Str("iban", iban.String()).
		Str("customer_number", number.String()).
		Str("balance", account.Balance.String()).
		Msg("checking account opened")

	return account, nil
}
