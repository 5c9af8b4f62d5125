package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// txRunner wraps fn in a session transaction. Transactions need a replica
// set, so they are opt-in; when disabled fn runs without one.
type txRunner struct {
	client  *mongo.Client
	enabled bool
}

func (t *txRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
