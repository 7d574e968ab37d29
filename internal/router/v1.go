package router

import (
	"net/http"

	"github.com/deppfellow/go-banking/internal/handler"
	"github.com/deppfellow/go-banking/internal/model/dto"
	"github.com/labstack/echo/v4"
)

func registerAccountOpeningRoutes(v1 *echo.Group, h *handler.Handlers) {
	opening := h.AccountOpening
	g := v1.Group("/account-opening")

	g.GET("/customers", handler.Handle[dto.ListPayload](opening.Handler, opening.ListCustomers, http.StatusOK))
	g.POST("/customers", handler.Handle[dto.CreateCustomerPayload](opening.Handler, opening.CreateCustomer, http.StatusCreated))
	g.GET("/customers/:customerNumber", handler.Handle[dto.CustomerNumberPayload](opening.Handler, opening.GetCustomer, http.StatusOK))
	g.GET("/customers/:customerNumber/accounts", handler.Handle[dto.CustomerNumberPayload](opening.Handler, opening.ListCustomerAccounts, http.StatusOK))

	g.GET("/accounts", handler.Handle[dto.ListPayload](opening.Handler, opening.ListAccounts, http.StatusOK))
	g.POST("/accounts", handler.Handle[dto.CreateAccountPayload](opening.Handler, opening.CreateAccount, http.StatusCreated))
	g.GET("/accounts/:iban", handler.Handle[dto.IBANPayload](opening.Handler, opening.GetAccount, http.StatusOK))
}

func registerAccountOperationRoutes(v1 *echo.Group, h *handler.Handlers) {
	operation := h.AccountOperation
	g := v1.Group("/account-operation")

	g.POST("/accounts/:iban/deposit", handler.Handle[dto.AmountPayload](operation.Handler, operation.Deposit, http.StatusOK))
	g.POST("/accounts/:iban/withdraw", handler.Handle[dto.AmountPayload](operation.Handler, operation.Withdraw, http.StatusOK))
	g.GET("/accounts/:iban/bookings", handler.Handle[dto.IBANPayload](operation.Handler, operation.Bookings, http.StatusOK))
	g.POST("/transfers", handler.Handle[dto.TransferPayload](operation.Handler, operation.Transfer, http.StatusOK))
}
