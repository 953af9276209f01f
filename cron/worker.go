package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"stayhive/config"
	"stayhive/models"
	"stayhive/services/tasks"

	"github.com/hibiken/asynq"
)

// InitSubmissionWorker runs the async worker that delivers confirmed
// bookings to the hotel system in the background.
func InitSubmissionWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSubmitBooking, handleSubmitBookingTask)

	go func() {
		log.Println("[SubmissionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SubmissionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SubmissionWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSubmitBookingTask(ctx context.Context, task *asynq.Task) error {
	var sub models.BookingSubmission
	if err := json.Unmarshal(task.Payload(), &sub); err != nil {
		log.Printf("[SubmissionHandler] invalid payload: %v", err)
		return err
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	endpoint := config.AppConfig.HotelAPIBaseURL + "/api/booking/create"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[SubmissionHandler] delivery failed for session %s: %v", sub.SessionID, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("[SubmissionHandler] hotel system rejected session %s with status %d", sub.SessionID, resp.StatusCode)
		return fmt.Errorf("hotel system returned status %d", resp.StatusCode)
	}

	log.Printf("[SubmissionHandler] booking delivered for session %s (payment %s)", sub.SessionID, sub.PaymentRef)
	return nil
}
