package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/config"
	orderRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/order"
	"github.com/KevinDarioIguaran/LCLGSC/models"

	"github.com/hibiken/asynq"
)

const TypePickupReminder = "pickup:reminder"

// PickupReminderPayload is the queued task body.
type PickupReminderPayload struct {
	OrderID  string `json:"orderId"`
	UserCode string `json:"userCode"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderClient enqueues pickup reminders on the asynq queue.
type ReminderClient struct {
	client *asynq.Client
}

// NewReminderClient builds the enqueue side of the reminder queue.
func NewReminderClient() *ReminderClient {
	return &ReminderClient{client: asynq.NewClient(redisOpts())}
}

// EnqueuePickupReminder schedules a reminder to fire after the delay.
func (r *ReminderClient) EnqueuePickupReminder(orderID, userCode string, delay time.Duration) error {
	payload, err := json.Marshal(PickupReminderPayload{OrderID: orderID, UserCode: userCode})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypePickupReminder, payload)
	_, err = r.client.Enqueue(task, asynq.ProcessIn(delay))
	return err
}

// Close releases the underlying queue connection.
func (r *ReminderClient) Close() error {
	return r.client.Close()
}

// InitPickupReminderWorker runs the async worker in background.
func InitPickupReminderWorker(orders orderRepo.OrderRepository) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePickupReminder, handlePickupReminder(orders))

	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handlePickupReminder fires when an order has been waiting for pickup.
// Orders already completed, cancelled or refunded are dropped silently.
func handlePickupReminder(orders orderRepo.OrderRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p PickupReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		o, err := orders.GetByID(ctx, p.OrderID)
		if err != nil {
			if err == orderRepo.ErrNotFound {
				return nil
			}
			return err
		}
		if o.Status != models.OrderStatusPending {
			return nil
		}

		log.Printf("[ReminderHandler] Order %s of user %s is still awaiting pickup", p.OrderID, p.UserCode)
		return nil
	}
}
