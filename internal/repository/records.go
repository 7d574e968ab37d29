package repository

import (
	"time"

	"github.com/deppfellow/go-banking/internal/mapper"
	"github.com/deppfellow/go-banking/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerRecord struct {
	Number    string    `gorm:"column:customer_number;primaryKey;size:5"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CustomerRecord) TableName() string { return "customers" }

type AccountRecord struct {
	IBAN           string          `gorm:"column:iban;primaryKey;size:34"`
	CustomerNumber string          `gorm:"size:5;not null;index"`
	Balance        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency       string          `gorm:"size:3;not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`

	Customer *CustomerRecord `gorm:"foreignKey:CustomerNumber;references:Number;constraint:OnDelete:CASCADE"`
	// Bookings is declared here so the journal's foreign key lands on bookings.
	Bookings []BookingRecord `gorm:"foreignKey:IBAN;references:IBAN;constraint:OnDelete:CASCADE"`
}

func (AccountRecord) TableName() string { return "checking_accounts" }

type BookingRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	IBAN      string          `gorm:"column:iban;size:34;not null;index:idx_bookings_iban_booked_at,priority:1"`
	Kind      string          `gorm:"size:16;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency  string          `gorm:"size:3;not null"`
	Reference string          `gorm:"size:64;not null"`
	BookedAt  time.Time       `gorm:"not null;index:idx_bookings_iban_booked_at,priority:2"`
}

func (BookingRecord) TableName() string { return "bookings" }

// Models lists the persisted models in dependency order.
func Models() []any {
	return []any{&CustomerRecord{}, &AccountRecord{}, &BookingRecord{}}
}

var customerMapper = mapper.New(
	func(r CustomerRecord) model.Customer {
		return model.Customer{
			Number:    model.CustomerNumber(r.Number),
			FirstName: r.FirstName,
			LastName:  r.LastName,
		}
	},
	func(c model.Customer) CustomerRecord {
		return CustomerRecord{
			Number:    c.Number.String(),
			FirstName: c.FirstName,
			LastName:  c.LastName,
		}
	},
)

var accountMapper = mapper.New(
	func(r AccountRecord) model.CheckingAccount {
		return *model.NewCheckingAccount(
			model.IBAN(r.IBAN),
			model.CustomerNumber(r.CustomerNumber),
			model.RestoreAmount(r.Balance, model.Currency(r.Currency)),
		)
	},
	func(a model.CheckingAccount) AccountRecord {
		return AccountRecord{
			IBAN:           a.IBAN.String(),
			CustomerNumber: a.Owner.String(),
			Balance:        a.Balance.Value(),
			Currency:       string(a.Balance.Currency()),
		}
	},
)

var bookingMapper = mapper.New(
	func(r BookingRecord) model.Booking {
		return model.Booking{
			ID:        r.ID,
			IBAN:      model.IBAN(r.IBAN),
			Kind:      model.BookingKind(r.Kind),
			Amount:    model.RestoreAmount(r.Amount, model.Currency(r.Currency)),
			Reference: r.Reference,
			BookedAt:  r.BookedAt,
		}
	},
	func(b model.Booking) BookingRecord {
		return BookingRecord{
			ID:        b.ID,
			IBAN:      b.IBAN.String(),
			Kind:      string(b.Kind),
			Amount:    b.Amount.Value(),
			Currency:  string(b.Amount.Currency()),
			Reference: b.Reference,
			BookedAt:  b.BookedAt,
		}
	},
)

func toAccounts(records []AccountRecord) []*model.CheckingAccount {
	accounts := make([]*model.CheckingAccount, 0, len(records))
	for _, account := range accountMapper.ToOutputs(records) {
		accounts = append(accounts, &account)
	}
	return accounts
}
