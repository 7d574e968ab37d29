package model

import "github.com/deppfellow/go-banking/internal/result"

// Account opening.
var (
	ErrCustomerListNotLoaded = result.NewError(result.KindNotFound,
		"AccountOpening.CustomerListNotLoaded", "The customer list could not be loaded.")
	ErrAccountListNotLoaded = result.NewError(result.KindNotFound,
		"AccountOpening.AccountListNotLoaded", "The checking account list could not be loaded.")
	ErrCustomerNameIncomplete = result.NewError(result.KindValidation,
		"AccountOpening.CustomerNameIncomplete", "First name and last name are required.")
	ErrCustomerNotCreated = result.NewError(result.KindFailure,
		"AccountOpening.CustomerNotCreated", "The customer could not be created.")
	ErrAccountNotCreated = result.NewError(result.KindFailure,
		"AccountOpening.AccountNotCreated", "The checking account could not be created.")
	ErrCustomerNotFound = result.NewError(result.KindNotFound,
		"AccountOpening.CustomerNotFound", "No customer exists with this customer number.")
	ErrAccountAlreadyExists = result.NewError(result.KindConflict,
		"AccountOpening.AccountAlreadyExists", "A checking account with this IBAN already exists.")
)

// Account operation.
var (
	ErrDepositFailed = result.NewError(result.KindFailure,
		"AccountOperation.DepositFailed", "The deposit could not be carried out.")
	ErrWithdrawalFailed = result.NewError(result.KindFailure,
		"AccountOperation.WithdrawalFailed", "The withdrawal could not be carried out.")
	ErrTransferFailed = result.NewError(result.KindFailure,
		"AccountOperation.TransferFailed", "The transfer could not be carried out.")
	ErrInsufficientBalance = result.NewError(result.KindInsufficientBalance,
		"AccountOperation.InsufficientBalance", "The account balance is insufficient.")
	ErrAccountNotFound = result.NewError(result.KindNotFound,
		"AccountOperation.AccountNotFound", "No checking account exists with this IBAN.")
	ErrInvalidAmount = result.NewError(result.KindValidation,
		"AccountOperation.InvalidAmount", "The amount must be greater than zero.")
	ErrSameAccountTransfer = result.NewError(result.KindValidation,
		"AccountOperation.SameAccountTransfer", "Source and target account must differ.")
)

// Value objects.
var (
	ErrInvalidIBAN = result.NewError(result.KindValidation,
		"Validation.InvalidIBAN", "The IBAN is not valid.")
	ErrInvalidCustomerNumber = result.NewError(result.KindValidation,
		"Validation.InvalidCustomerNumber", "The customer number must have exactly 5 characters.")
	ErrNegativeAmount = result.NewError(result.KindValidation,
		"Validation.NegativeAmount", "An amount must not be negative.")
	ErrTooManyDecimals = result.NewError(result.KindValidation,
		"Validation.TooManyDecimals", "An amount must not have more than two decimal places.")
	ErrCurrencyMismatch = result.NewError(result.KindValidation,
		"Validation.CurrencyMismatch", "Amounts in different currencies cannot be combined.")
	ErrUnsupportedCurrency = result.NewError(result.KindValidation,
		"Validation.UnsupportedCurrency", "The currency is not supported.")
	ErrInitialDepositNotAllowed = result.NewError(result.KindValidation,
		"Validation.InitialDepositNotAllowed", "An initial deposit is only possible on an empty account.")
)
