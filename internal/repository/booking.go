package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-banking/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create stores a booking. A booking with the same id is kept as is, so
// redelivered events are recorded once.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	record := bookingMapper.ToInput(*booking)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to create booking %s: %w", booking.ID, err)
	}
	return nil
}

// ListByIBAN returns the journal of one account, oldest first.
func (r *BookingRepository) ListByIBAN(ctx context.Context, iban model.IBAN) ([]model.Booking, error) {
	records := make([]BookingRecord, 0)
	err := r.db.WithContext(ctx).
		Where("iban = ?", iban.String()).
		Order("booked_at, id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of %s: %w", iban, err)
	}
	return bookingMapper.ToOutputs(records), nil
}
