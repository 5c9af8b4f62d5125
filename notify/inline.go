package notify

import (
	"context"
	"time"

	"go-shop/logging"
)

// InlineDispatcher processes tasks on a goroutine in this process. It needs no
// broker, at the cost of losing queued work on restart.
type InlineDispatcher struct {
	Worker  *Worker
	Timeout time.Duration
}

func (d *InlineDispatcher) Dispatch(_ context.Context, task Task) error {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := d.Worker.Handle(ctx, task); err != nil {
			logging.Error(logging.Fields{TaskID: task.ID, OrderID: task.OrderID, Step: "notify"}, err)
		}
	}()
	return nil
}
