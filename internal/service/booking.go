package service

import (
	"context"

	"github.com/deppfellow/go-banking/internal/model"
	"github.com/deppfellow/go-banking/internal/repository"
	"github.com/rs/zerolog"
)

// BookingService records booking events in the journal. It serves both the
// queue worker and the in-process publisher.
type BookingService struct {
	repos  *repository.Repositories
	logger *zerolog.Logger
}

func NewBookingService(repos *repository.Repositories, logger *zerolog.Logger) *BookingService {
	return &BookingService{repos: repos, logger: logger}
}

func (s *BookingService) Record(ctx context.Context, event model.BookingEvent) error {
	booking, err := model.BookingFromEvent(event)
	if err != nil {
		return err
	}

	if err := s.repos.Bookings.Create(ctx, &booking); err != nil {
		return err
	}

	s.logger.Debug().
		Str("booking_id", booking.ID.String()).
		Str("iban", booking.IBAN.String()).
		Str("kind", string(booking.Kind)).
		Msg("booking recorded")
	return nil
}
