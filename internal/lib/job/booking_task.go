package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/go-banking/internal/model"
	"github.com/hibiken/asynq"
)

const TaskBookingRecord = "booking:record"

// NewBookingRecordTask wraps a booking event. The event id doubles as task
// id so an event is enqueued at most once.
func NewBookingRecordTask(event model.BookingEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskBookingRecord,
		payload,
		asynq.TaskID(event.ID.String()),
		asynq.MaxRetry(5),
		asynq.Queue(QueueCritical),
		asynq.Timeout(30*time.Second),
	), nil
}
