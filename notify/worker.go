package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-shop/logging"
	"go-shop/store"
	"go-shop/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Worker turns tasks into invoice emails
type Worker struct {
	Orders     store.Orders
	Users      store.Users
	Mailer     utils.Mailer
	InvoiceDir string
}

// Handle renders the order's invoice, stores it under InvoiceDir when set and
// emails it to the address carried by the task.
func (w *Worker) Handle(ctx context.Context, task Task) error {
	orderID, err := primitive.ObjectIDFromHex(task.OrderID)
	if err != nil {
		return fmt.Errorf("task %s: bad order id: %w", task.ID, err)
	}
	order, err := w.Orders.FindOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", task.OrderID, err)
	}
	items, err := w.Orders.ListOrderItems(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load items of order %s: %w", task.OrderID, err)
	}

	customer, err := w.Users.FindUserByID(ctx, order.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("load customer: %w", err)
	}

	pdf, err := RenderInvoice(Invoice{Order: order, Items: items, Customer: customer})
	if err != nil {
		return err
	}

	name := InvoiceFileName(order)
	if w.InvoiceDir != "" {
		if err := os.MkdirAll(w.InvoiceDir, 0o755); err != nil {
			return fmt.Errorf("invoice dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(w.InvoiceDir, name), pdf, 0o644); err != nil {
			return fmt.Errorf("write invoice: %w", err)
		}
	}

	msg := utils.Message{
		To:      task.Email,
		Subject: fmt.Sprintf("Invoice for Order #%s", task.OrderID),
		Text: fmt.Sprintf("Thank you for your order #%s.\nTotal: %s\nYour invoice is attached.",
			task.OrderID, task.Total.StringFixed(2)),
		Attachments: []utils.Attachment{{Name: name, ContentType: "application/pdf", Data: pdf}},
	}
	if err := w.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send invoice: %w", err)
	}

	logging.Log(logging.Fields{TaskID: task.ID, OrderID: task.OrderID, Step: "notify", Status: "sent"})
	return nil
}

// Run consumes src until ctx is cancelled. A failing task is logged and
// skipped; a failing source is retried after a pause.
func (w *Worker) Run(ctx context.Context, src Source) error {
	for {
		task, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Error(logging.Fields{Step: "notify", Status: "source_error"}, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
			continue
		}

		if err := w.Handle(ctx, task); err != nil {
			logging.Error(logging.Fields{TaskID: task.ID, OrderID: task.OrderID, Step: "notify", Status: "failed"}, err)
		}
	}
}
