package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/go-banking/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openPayload struct {
	IBAN           string          `json:"iban" validate:"required,iban"`
	CustomerNumber string          `json:"customerNumber" validate:"required,customer_number"`
	Balance        decimal.Decimal `json:"balance" validate:"decimal_gte=0"`
}

func (p *openPayload) Validate() error { return Struct(p) }

type movePayload struct {
	Amount decimal.Decimal `json:"amount" validate:"decimal_gt=0,decimal_scale=2"`
}

func (p *movePayload) Validate() error { return Struct(p) }

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "toIban", Message: "must differ from fromIban"}}
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_Valid(t *testing.T) {
	p := &openPayload{}
	err := BindAndValidate(newContext(`{"iban":"DE89 3704 0044 0532 0130 00","customerNumber":"K0001","balance":"10.50"}`), p)

	require.NoError(t, err)
	assert.True(t, p.Balance.Equal(decimal.RequireFromString("10.5")))
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	p := &openPayload{}
	err := BindAndValidate(newContext(`{"iban":"DE00370400440532013000","customerNumber":"K01","balance":-1}`), p)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)

	fields := map[string]string{}
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be a valid IBAN", fields["iban"])
	assert.Equal(t, "must have exactly 5 characters", fields["customerNumber"])
	assert.Equal(t, "must be at least 0", fields["balance"])
}

func TestBindAndValidate_DecimalGreaterThan(t *testing.T) {
	err := BindAndValidate(newContext(`{"amount":0}`), &movePayload{})
	require.Error(t, err)

	err = BindAndValidate(newContext(`{"amount":0.01}`), &movePayload{})
	assert.NoError(t, err)
}

func TestBindAndValidate_DecimalScale(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{name: "cents", body: `{"amount":"10.25"}`, valid: true},
		{name: "trailing zeros", body: `{"amount":"10.2500"}`, valid: true},
		{name: "whole", body: `{"amount":7}`, valid: true},
		{name: "sub cent", body: `{"amount":"0.004"}`},
		{name: "three decimals", body: `{"amount":1.005}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BindAndValidate(newContext(tt.body), &movePayload{})
			if tt.valid {
				assert.NoError(t, err)
				return
			}

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, "amount", httpErr.Errors[0].Field)
			assert.Equal(t, "must have at most 2 decimal places", httpErr.Errors[0].Error)
		})
	}
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := BindAndValidate(newContext(`{"amount":`), &movePayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{}`), &customPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "toIban", httpErr.Errors[0].Field)
}
