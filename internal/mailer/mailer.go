// Package mailer delivers notification email off the request path. Services
// enqueue a task into a Redis list and move on; a background worker pops tasks
// and talks SMTP. Delivery is best-effort: failures are logged, never
// propagated back into an engine result.
package mailer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/conf"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const queueKey = "task:send_mail"

// Mailer is what services see. The queue-backed implementation lives here;
// tests substitute a no-op.
type Mailer interface {
	SendInvitationEmail(ctx context.Context, toAddress, teamName, eventName string)
	SendSecurityCode(ctx context.Context, toAddress, code string)
}

type Task struct {
	ID      string `json:"id"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type QueueMailer struct {
	rdb *redis.Client
}

func NewQueueMailer(rdb *redis.Client) *QueueMailer {
	return &QueueMailer{rdb: rdb}
}

func (m *QueueMailer) SendInvitationEmail(ctx context.Context, toAddress, teamName, eventName string) {
	m.enqueue(ctx, Task{
		ID:      uuid.New().String(),
		To:      toAddress,
		Subject: "Team invitation: " + eventName,
		Body:    "Team " + teamName + " has invited you to join them for " + eventName + ". Log in to accept or reject the invite.",
	})
}

func (m *QueueMailer) SendSecurityCode(ctx context.Context, toAddress, code string) {
	m.enqueue(ctx, Task{
		ID:      uuid.New().String(),
		To:      toAddress,
		Subject: "Your security code",
		Body:    "Your security code is " + code + ". It expires in 10 minutes.",
	})
}

func (m *QueueMailer) enqueue(ctx context.Context, task Task) {
	payload, err := json.Marshal(task)
	if err != nil {
		log.Printf("mailer: marshal task failed: %v", err)
		return
	}
	// Bounded so a slow Redis can't stall the request that triggered the mail.
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := m.rdb.LPush(ctx, queueKey, payload).Err(); err != nil {
		log.Printf("mailer: enqueue failed for %s: %v", task.To, err)
	}
}

// NoopMailer satisfies Mailer without side effects.
type NoopMailer struct{}

func (NoopMailer) SendInvitationEmail(context.Context, string, string, string) {}
func (NoopMailer) SendSecurityCode(context.Context, string, string)            {}

var _ Mailer = (*QueueMailer)(nil)
var _ Mailer = NoopMailer{}

// Worker drains the mail queue and performs SMTP delivery.
type Worker struct {
	rdb    *redis.Client
	sender Sender
}

// Sender performs one delivery. Split out so the worker loop can be tested
// without an SMTP server.
type Sender interface {
	Send(task Task) error
}

func NewWorker(rdb *redis.Client, cfg conf.MailConfig) *Worker {
	return &Worker{rdb: rdb, sender: newSMTPSender(cfg)}
}

func NewWorkerWithSender(rdb *redis.Client, sender Sender) *Worker {
	return &Worker{rdb: rdb, sender: sender}
}

// Start launches the worker goroutines. Blocks only inside them.
func (w *Worker) Start(ctx context.Context, numWorkers int) {
	log.Printf("starting %d mail worker(s) on queue %s", numWorkers, queueKey)
	for i := 0; i < numWorkers; i++ {
		go w.processLoop(ctx, i)
	}
}

func (w *Worker) processLoop(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			result, err := w.rdb.BLPop(ctx, 5*time.Second, queueKey).Result()
			if err != nil {
				if err == redis.Nil || ctx.Err() != nil {
					continue
				}
				log.Printf("[mail-%d] queue read failed: %v", workerID, err)
				time.Sleep(3 * time.Second)
				continue
			}

			var task Task
			if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
				log.Printf("[mail-%d] bad task payload: %v", workerID, err)
				continue
			}

			if err := w.sender.Send(task); err != nil {
				log.Printf("[mail-%d] delivery failed for %s: %v", workerID, task.To, err)
			} else {
				log.Printf("[mail-%d] delivered %s to %s", workerID, task.ID, task.To)
			}
		}
	}
}
