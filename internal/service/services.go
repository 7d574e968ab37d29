// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, loads and changes the domain model and persists it
// through the repositories. Domain failures are returned as result.Error
// values from the model error catalog.
package service

import (
	"github.com/deppfellow/go-banking/internal/lib/job"
	"github.com/deppfellow/go-banking/internal/repository"
	"github.com/deppfellow/go-banking/internal/server"
)

type Services struct {
	AccountOpening   *AccountOpeningService
	AccountOperation *AccountOperationService
	Booking          *BookingService
	Job              *job.JobService
}

// NewServices wires the services. Booking events go through the job queue
// when it is running and are recorded in-process otherwise.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	bookingService := NewBookingService(repos, s.Logger)

	var publisher job.Publisher = job.NewInlinePublisher(bookingService)
	if s.Job != nil {
		s.Job.InitHandlers(bookingService)
		publisher = job.NewQueuePublisher(s.Job.Client)
	}

	return &Services{
		AccountOpening:   NewAccountOpeningService(repos, s.Logger),
		AccountOperation: NewAccountOperationService(repos, publisher, s.Logger),
		Booking:          bookingService,
		Job:              s.Job,
	}, nil
}
