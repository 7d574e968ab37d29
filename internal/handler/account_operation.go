package handler

import (
	"context"

	"github.com/deppfellow/go-banking/internal/model"
	"github.com/deppfellow/go-banking/internal/model/dto"
	"github.com/deppfellow/go-banking/internal/server"
	"github.com/deppfellow/go-banking/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AccountOperationService interface {
	Deposit(ctx context.Context, iban model.IBAN, value decimal.Decimal) (*model.CheckingAccount, error)
	Withdraw(ctx context.Context, iban model.IBAN, value decimal.Decimal) (*model.CheckingAccount, error)
	Transfer(ctx context.Context, from, to model.IBAN, value decimal.Decimal) (*service.TransferReceipt, error)
	Bookings(ctx context.Context, iban model.IBAN) ([]model.Booking, error)
}

// AccountOperationHandler serves deposits, withdrawals and transfers.
type AccountOperationHandler struct {
	Handler
	service AccountOperationService
}

func NewAccountOperationHandler(s *server.Server, service AccountOperationService) *AccountOperationHandler {
	return &AccountOperationHandler{
		Handler: NewHandler(s),
		service: service,
	}
}

func (h *AccountOperationHandler) Deposit(c echo.Context, req *dto.AmountPayload) (dto.BalanceResponse, error) {
	iban, err := model.ParseIBAN(req.IBAN)
	if err != nil {
		return dto.BalanceResponse{}, err
	}

	account, err := h.service.Deposit(c.Request().Context(), iban, req.Amount)
	if err != nil {
		return dto.BalanceResponse{}, err
	}
	return dto.NewBalanceResponse(*account), nil
}

func (h *AccountOperationHandler) Withdraw(c echo.Context, req *dto.AmountPayload) (dto.BalanceResponse, error) {
	iban, err := model.ParseIBAN(req.IBAN)
	if err != nil {
		return dto.BalanceResponse{}, err
	}

	account, err := h.service.Withdraw(c.Request().Context(), iban, req.Amount)
	if err != nil {
		return dto.BalanceResponse{}, err
	}
	return dto.NewBalanceResponse(*account), nil
}

func (h *AccountOperationHandler) Transfer(c echo.Context, req *dto.TransferPayload) (dto.TransferResponse, error) {
	from, err := model.ParseIBAN(req.FromIBAN)
	if err != nil {
		return dto.TransferResponse{}, err
	}
	to, err := model.ParseIBAN(req.ToIBAN)
	if err != nil {
		return dto.TransferResponse{}, err
	}

	receipt, err := h.service.Transfer(c.Request().Context(), from, to, req.Amount)
	if err != nil {
		return dto.TransferResponse{}, err
	}

	return dto.TransferResponse{
		Reference: receipt.Reference.String(),
		FromIBAN:  receipt.From.IBAN.String(),
		ToIBAN:    receipt.To.IBAN.String(),
		Amount:    receipt.Amount.Value().StringFixed(2),
		Balance:   receipt.From.Balance.Value().StringFixed(2),
		Currency:  string(receipt.From.Balance.Currency()),
	}, nil
}

// Bookings answers an account without bookings with an empty list.
func (h *AccountOperationHandler) Bookings(c echo.Context, req *dto.IBANPayload) ([]dto.BookingResponse, error) {
	iban, err := model.ParseIBAN(req.IBAN)
	if err != nil {
		return nil, err
	}

	bookings, err := h.service.Bookings(c.Request().Context(), iban)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		return []dto.BookingResponse{}, nil
	}
	return dto.BookingMapper.ToOutputs(bookings), nil
}
