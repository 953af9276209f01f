package tasks

import (
	"context"
	"encoding/json"

	"stayhive/models"

	"github.com/hibiken/asynq"
)

const TypeSubmitBooking = "booking:submit"

// NewSubmitBookingTask wraps a confirmed booking for delivery to the hotel
// system.
func NewSubmitBookingTask(sub models.BookingSubmission) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(sub)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSubmitBooking, b)
	opts := []asynq.Option{asynq.MaxRetry(5)}

	return task, opts, nil
}

// Queue enqueues booking submissions on the shared asynq client.
type Queue struct {
	Client *asynq.Client
}

func NewQueue(client *asynq.Client) *Queue {
	return &Queue{Client: client}
}

func (q *Queue) EnqueueSubmission(ctx context.Context, sub models.BookingSubmission) error {
	task, opts, err := NewSubmitBookingTask(sub)
	if err != nil {
		return err
	}
	_, err = q.Client.EnqueueContext(ctx, task, opts...)
	return err
}
