package service

import (
	"context"
	"testing"

	"github.com/deppfellow/go-banking/internal/database"
	"github.com/deppfellow/go-banking/internal/lib/job"
	"github.com/deppfellow/go-banking/internal/model"
	"github.com/deppfellow/go-banking/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	ibanMax  = model.IBAN("DE89370400440532013000")
	ibanAnna = model.IBAN("DE62370400440532013001")
	ibanNone = model.IBAN("GB29NWBK60161331926819")
)

type testEnv struct {
	db        *database.Database
	repos     *repository.Repositories
	opening   *AccountOpeningService
	operation *AccountOperationService
	bookings  *BookingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenMemory(&gorm.Config{Logger: gormlogger.Discard, TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.DB.AutoMigrate(repository.Models()...))
	t.Cleanup(func() { _ = db.Close() })

	logger := zerolog.Nop()
	repos := repository.NewRepositories(db.DB)
	bookings := NewBookingService(repos, &logger)

	return &testEnv{
		db:        db,
		repos:     repos,
		opening:   NewAccountOpeningService(repos, &logger),
		operation: NewAccountOperationService(repos, job.NewInlinePublisher(bookings), &logger),
		bookings:  bookings,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedAccount opens a customer with one account holding balance.
func (e *testEnv) seedAccount(t *testing.T, iban model.IBAN, balance string) model.CustomerNumber {
	t.Helper()

	customer, err := e.opening.CreateCustomer(context.Background(), "Max", "Mustermann")
	require.NoError(t, err)
	_, err = e.opening.CreateAccount(context.Background(), customer.Number, iban, dec(balance))
	require.NoError(t, err)
	return customer.Number
}

func (e *testEnv) balance(t *testing.T, iban model.IBAN) string {
	t.Helper()

	account, err := e.repos.Accounts.GetByIBAN(context.Background(), iban)
	require.NoError(t, err)
	return account.Balance.Value().StringFixed(2)
}

func TestAccountOpening_Customers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.opening.ListCustomers(ctx)
	assert.ErrorIs(t, err, model.ErrCustomerListNotLoaded)

	_, err = env.opening.CreateCustomer(ctx, " ", "Mustermann")
	assert.ErrorIs(t, err, model.ErrCustomerNameIncomplete)

	created, err := env.opening.CreateCustomer(ctx, "  Max ", "Mustermann")
	require.NoError(t, err)
	assert.Len(t, created.Number.String(), model.CustomerNumberLength)
	assert.Equal(t, "Max", created.FirstName)

	customers, err := env.opening.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, created.Number, customers[0].Number)

	found, err := env.opening.GetCustomer(ctx, created.Number)
	require.NoError(t, err)
	assert.Equal(t, "Max Mustermann", found.FullName())

	_, err = env.opening.GetCustomer(ctx, "ZZZZZ")
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}

func TestAccountOpening_Accounts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.opening.ListAccounts(ctx)
	assert.ErrorIs(t, err, model.ErrAccountListNotLoaded)

	_, err = env.opening.CreateAccount(ctx, "ZZZZZ", ibanMax, dec("10"))
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)

	customer, err := env.opening.CreateCustomer(ctx, "Max", "Mustermann")
	require.NoError(t, err)

	_, err = env.opening.ListCustomerAccounts(ctx, customer.Number)
	assert.ErrorIs(t, err, model.ErrAccountListNotLoaded)

	_, err = env.opening.CreateAccount(ctx, customer.Number, ibanMax, dec("-1"))
	assert.ErrorIs(t, err, model.ErrNegativeAmount)

	account, err := env.opening.CreateAccount(ctx, customer.Number, ibanMax, dec("1000.50"))
	require.NoError(t, err)
	assert.Equal(t, "1000.50 EUR", account.Balance.String())
	assert.Empty(t, account.Events())

	_, err = env.opening.CreateAccount(ctx, customer.Number, ibanMax, dec("5"))
	assert.ErrorIs(t, err, model.ErrAccountAlreadyExists)

	accounts, err := env.opening.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	owned, err := env.opening.ListCustomerAccounts(ctx, customer.Number)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, ibanMax, owned[0].IBAN)

	_, err = env.opening.ListCustomerAccounts(ctx, "ZZZZZ")
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)

	owner, details, err := env.opening.GetAccount(ctx, ibanMax)
	require.NoError(t, err)
	assert.Equal(t, customer.Number, owner.Number)
	assert.Equal(t, ibanMax, details.IBAN)

	_, _, err = env.opening.GetAccount(ctx, ibanNone)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestAccountOperation_Deposit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAccount(t, ibanMax, "10.00")

	account, err := env.operation.Deposit(ctx, ibanMax, dec("1"))
	require.NoError(t, err)
	assert.Equal(t, "11.00", account.Balance.Value().StringFixed(2))
	assert.Equal(t, "11.00", env.balance(t, ibanMax))

	_, err = env.operation.Deposit(ctx, ibanMax, dec("0"))
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = env.operation.Deposit(ctx, ibanNone, dec("1"))
	assert.ErrorIs(t, err, model.ErrAccountNotFound)

	bookings, err := env.operation.Bookings(ctx, ibanMax)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, model.BookingDeposit, bookings[0].Kind)
	assert.Equal(t, "1.00", bookings[0].Amount.Value().StringFixed(2))
}

func TestAccountOperation_RejectsSubCentAmounts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	number := env.seedAccount(t, ibanMax, "10.00")

	_, err := env.operation.Deposit(ctx, ibanMax, dec("0.004"))
	assert.ErrorIs(t, err, model.ErrTooManyDecimals)

	_, err = env.operation.Withdraw(ctx, ibanMax, dec("1.005"))
	assert.ErrorIs(t, err, model.ErrTooManyDecimals)

	_, err = env.opening.CreateAccount(ctx, number, ibanAnna, dec("0.001"))
	assert.ErrorIs(t, err, model.ErrTooManyDecimals)

	assert.Equal(t, "10.00", env.balance(t, ibanMax))
	bookings, err := env.operation.Bookings(ctx, ibanMax)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestAccountOperation_Withdraw(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAccount(t, ibanMax, "10.00")

	account, err := env.operation.Withdraw(ctx, ibanMax, dec("4"))
	require.NoError(t, err)
	assert.Equal(t, "6.00", account.Balance.Value().StringFixed(2))

	_, err = env.operation.Withdraw(ctx, ibanMax, dec("6.01"))
	assert.ErrorIs(t, err, model.ErrInsufficientBalance)
	assert.Equal(t, "6.00", env.balance(t, ibanMax))

	account, err = env.operation.Withdraw(ctx, ibanMax, dec("6"))
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())

	_, err = env.operation.Withdraw(ctx, ibanNone, dec("1"))
	assert.ErrorIs(t, err, model.ErrAccountNotFound)

	bookings, err := env.operation.Bookings(ctx, ibanMax)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestAccountOperation_Transfer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAccount(t, ibanMax, "100.00")
	env.seedAccount(t, ibanAnna, "50.00")

	receipt, err := env.operation.Transfer(ctx, ibanMax, ibanAnna, dec("30"))
	require.NoError(t, err)
	assert.Equal(t, "70.00", receipt.From.Balance.Value().StringFixed(2))
	assert.Equal(t, "80.00", receipt.To.Balance.Value().StringFixed(2))
	assert.Equal(t, "70.00", env.balance(t, ibanMax))
	assert.Equal(t, "80.00", env.balance(t, ibanAnna))

	// Reverse direction exercises the lock ordering.
	_, err = env.operation.Transfer(ctx, ibanAnna, ibanMax, dec("80"))
	require.NoError(t, err)
	assert.Equal(t, "150.00", env.balance(t, ibanMax))
	assert.Equal(t, "0.00", env.balance(t, ibanAnna))

	source, err := env.operation.Bookings(ctx, ibanMax)
	require.NoError(t, err)
	require.Len(t, source, 2)
	assert.Equal(t, receipt.Reference.String(), source[0].Reference)
	assert.Equal(t, model.BookingWithdrawal, source[0].Kind)
}

func TestAccountOperation_TransferFailuresLeaveBalances(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAccount(t, ibanMax, "10.00")
	env.seedAccount(t, ibanAnna, "5.00")

	_, err := env.operation.Transfer(ctx, ibanMax, ibanAnna, dec("10.01"))
	assert.ErrorIs(t, err, model.ErrInsufficientBalance)

	_, err = env.operation.Transfer(ctx, ibanMax, ibanNone, dec("1"))
	assert.ErrorIs(t, err, model.ErrAccountNotFound)

	_, err = env.operation.Transfer(ctx, ibanMax, ibanMax, dec("1"))
	assert.ErrorIs(t, err, model.ErrSameAccountTransfer)

	_, err = env.operation.Transfer(ctx, ibanMax, ibanAnna, dec("-1"))
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	assert.Equal(t, "10.00", env.balance(t, ibanMax))
	assert.Equal(t, "5.00", env.balance(t, ibanAnna))

	bookings, err := env.operation.Bookings(ctx, ibanMax)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestAccountOperation_StoreFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAccount(t, ibanMax, "10.00")
	require.NoError(t, env.db.Close())

	_, err := env.operation.Deposit(ctx, ibanMax, dec("1"))
	assert.ErrorIs(t, err, model.ErrDepositFailed)

	_, err = env.operation.Withdraw(ctx, ibanMax, dec("1"))
	assert.ErrorIs(t, err, model.ErrWithdrawalFailed)

	_, err = env.operation.Transfer(ctx, ibanMax, ibanAnna, dec("1"))
	assert.ErrorIs(t, err, model.ErrTransferFailed)
}

func TestAccountOperation_BookingsOfUnknownAccount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.operation.Bookings(context.Background(), ibanNone)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestBookingService_RecordIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedAccount(t, ibanMax, "0")

	amount, err := model.EuroAmount(dec("5"))
	require.NoError(t, err)
	account := model.NewCheckingAccount(ibanMax, "K0001", model.ZeroAmount(model.EUR))
	require.NoError(t, account.Deposit(amount, "cash"))
	event := account.PullEvents()[0]

	require.NoError(t, env.bookings.Record(ctx, event))
	require.NoError(t, env.bookings.Record(ctx, event))

	bookings, err := env.operation.Bookings(ctx, ibanMax)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "cash", bookings[0].Reference)
}
