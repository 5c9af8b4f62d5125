package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaQueue publishes tasks to a topic and consumes them in a consumer group.
// Tasks are keyed by order id.
type KafkaQueue struct {
	writer *kafka.Writer
	reader *kafka.Reader
}

func NewKafkaQueue(brokers []string, topic, groupID string) *KafkaQueue {
	return &KafkaQueue{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
	}
}

func (q *KafkaQueue) Dispatch(ctx context.Context, task Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(task.OrderID), Value: data, Time: time.Now().UTC()}
	if err := q.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish task %s: %w", task.ID, err)
	}
	return nil
}

func (q *KafkaQueue) Next(ctx context.Context) (Task, error) {
	msg, err := q.reader.ReadMessage(ctx)
	if err != nil {
		return Task{}, err
	}
	var task Task
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		return Task{}, fmt.Errorf("decode task at offset %d: %w", msg.Offset, err)
	}
	return task, nil
}

func (q *KafkaQueue) Close() error {
	return errors.Join(q.writer.Close(), q.reader.Close())
}
