package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/go-banking/internal/model"
	"github.com/hibiken/asynq"
)

// BookingRecorder persists booking events in the journal.
type BookingRecorder interface {
	Record(ctx context.Context, event model.BookingEvent) error
}

// InitHandlers sets the dependencies of the task handlers. It must be
// called before Start.
func (j *JobService) InitHandlers(recorder BookingRecorder) {
	j.recorder = recorder
}

func (j *JobService) handleBookingRecordTask(ctx context.Context, t *asynq.Task) error {
	var event model.BookingEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal booking event: %v: %w", err, asynq.SkipRetry)
	}

	if j.recorder == nil {
		return errors.New("booking recorder not initialized")
	}

	j.logger.Debug().
		Str("type", TaskBookingRecord).
		Str("booking_id", event.ID.String()).
		Str("iban", event.IBAN.String()).
		Msg("Processing booking event")

	if err := j.recorder.Record(ctx, event); err != nil {
		j.logger.Error().
			Err(err).
			Str("booking_id", event.ID.String()).
			Msg("Failed to record booking")
		return err
	}

	return nil
}
