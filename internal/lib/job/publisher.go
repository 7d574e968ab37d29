package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/go-banking/internal/model"
	"github.com/hibiken/asynq"
)

// Publisher hands booking events on once the balance change is committed.
type Publisher interface {
	Publish(ctx context.Context, events ...model.BookingEvent) error
}

// Enqueuer is the part of *asynq.Client the queue publisher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuePublisher enqueues one task per event.
type QueuePublisher struct {
	client Enqueuer
}

func NewQueuePublisher(client Enqueuer) *QueuePublisher {
	return &QueuePublisher{client: client}
}

func (p *QueuePublisher) Publish(ctx context.Context, events ...model.BookingEvent) error {
	var errs []error
	for _, event := range events {
		task, err := NewBookingRecordTask(event)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if _, err := p.client.EnqueueContext(ctx, task); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			errs = append(errs, fmt.Errorf("enqueue booking %s: %w", event.ID, err))
		}
	}
	return errors.Join(errs...)
}

// InlinePublisher records events synchronously. It is used when no Redis
// is configured.
type InlinePublisher struct {
	recorder BookingRecorder
}

func NewInlinePublisher(recorder BookingRecorder) *InlinePublisher {
	return &InlinePublisher{recorder: recorder}
}

func (p *InlinePublisher) Publish(ctx context.Context, events ...model.BookingEvent) error {
	var errs []error
	for _, event := range events {
		if err := p.recorder.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
