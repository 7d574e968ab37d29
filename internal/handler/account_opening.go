package handler

import (
	"context"

	"github.com/deppfellow/go-banking/internal/model"
	"github.com/deppfellow/go-banking/internal/model/dto"
	"github.com/deppfellow/go-banking/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AccountOpeningService interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, number model.CustomerNumber) (*model.Customer, error)
	ListCustomerAccounts(ctx context.Context, number model.CustomerNumber) ([]*model.CheckingAccount, error)
	CreateCustomer(ctx context.Context, firstName, lastName string) (*model.Customer, error)
	ListAccounts(ctx context.Context) ([]*model.CheckingAccount, error)
	GetAccount(ctx context.Context, iban model.IBAN) (*model.Customer, *model.CheckingAccount, error)
	CreateAccount(ctx context.Context, number model.CustomerNumber, iban model.IBAN, balance decimal.Decimal) (*model.CheckingAccount, error)
}

// AccountOpeningHandler serves customers and account opening.
type AccountOpeningHandler struct {
	Handler
	service AccountOpeningService
}

func NewAccountOpeningHandler(s *server.Server, service AccountOpeningService) *AccountOpeningHandler {
	return &AccountOpeningHandler{
		Handler: NewHandler(s),
		service: service,
	}
}

func (h *AccountOpeningHandler) ListCustomers(c echo.Context, _ *dto.ListPayload) ([]dto.CustomerResponse, error) {
	customers, err := h.service.ListCustomers(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return dto.CustomerMapper.ToOutputs(customers), nil
}

func (h *AccountOpeningHandler) GetCustomer(c echo.Context, req *dto.CustomerNumberPayload) (dto.CustomerResponse, error) {
	number, err := model.ParseCustomerNumber(req.CustomerNumber)
	if err != nil {
		return dto.CustomerResponse{}, err
	}

	customer, err := h.service.GetCustomer(c.Request().Context(), number)
	if err != nil {
		return dto.CustomerResponse{}, err
	}
	return dto.CustomerMapper.ToOutput(*customer), nil
}

func (h *AccountOpeningHandler) ListCustomerAccounts(c echo.Context, req *dto.CustomerNumberPayload) ([]dto.AccountResponse, error) {
	number, err := model.ParseCustomerNumber(req.CustomerNumber)
	if err != nil {
		return nil, err
	}

	accounts, err := h.service.ListCustomerAccounts(c.Request().Context(), number)
	if err != nil {
		return nil, err
	}
	return dto.AccountMapper.ToOutputs(values(accounts)), nil
}

func (h *AccountOpeningHandler) CreateCustomer(c echo.Context, req *dto.CreateCustomerPayload) (dto.CustomerResponse, error) {
	customer, err := h.service.CreateCustomer(c.Request().Context(), req.FirstName, req.LastName)
	if err != nil {
		return dto.CustomerResponse{}, err
	}
	return dto.CustomerMapper.ToOutput(*customer), nil
}

func (h *AccountOpeningHandler) ListAccounts(c echo.Context, _ *dto.ListPayload) ([]dto.AccountResponse, error) {
	accounts, err := h.service.ListAccounts(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return dto.AccountMapper.ToOutputs(values(accounts)), nil
}

func (h *AccountOpeningHandler) GetAccount(c echo.Context, req *dto.IBANPayload) (dto.AccountDetailsResponse, error) {
	iban, err := model.ParseIBAN(req.IBAN)
	if err != nil {
		return dto.AccountDetailsResponse{}, err
	}

	customer, account, err := h.service.GetAccount(c.Request().Context(), iban)
	if err != nil {
		return dto.AccountDetailsResponse{}, err
	}
	return dto.AccountDetailsMapper.Map(*customer, *account), nil
}

func (h *AccountOpeningHandler) CreateAccount(c echo.Context, req *dto.CreateAccountPayload) (dto.AccountResponse, error) {
	number, err := model.ParseCustomerNumber(req.CustomerNumber)
	if err != nil {
		return dto.AccountResponse{}, err
	}
	iban, err := model.ParseIBAN(req.IBAN)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	account, err := h.service.CreateAccount(c.Request().Context(), number, iban, req.Balance)
	if err != nil {
		return dto.AccountResponse{}, err
	}
	return dto.AccountMapper.ToOutput(*account), nil
}

// values dereferences the accounts; a nil list stays nil.
func values(accounts []*model.CheckingAccount) []model.CheckingAccount {
	if accounts == nil {
		return nil
	}
	out := make([]model.CheckingAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, *a)
	}
	return out
}
