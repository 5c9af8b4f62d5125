// Package notify delivers post-checkout side effects: it renders the invoice
// PDF for an order and emails it to the customer. Checkout only submits a Task
// and never waits for the outcome.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is the message handed from checkout to the notification worker
type Task struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	OrderID   string          `json:"order_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewTask builds a task with a fresh id
func NewTask(email string, orderID primitive.ObjectID, total decimal.Decimal) Task {
	return Task{
		ID:        uuid.NewString(),
		Email:     email,
		OrderID:   orderID.Hex(),
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}
}

// Dispatcher submits a task for asynchronous processing
type Dispatcher interface {
	Dispatch(ctx context.Context, task Task) error
}

// Source yields queued tasks to a Worker. Next blocks until a task is
// available or ctx is done.
type Source interface {
	Next(ctx context.Context) (Task, error)
}
