package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	w kafkaWriter
}

// NewKafkaPublisher writes events to one topic keyed by post ID so that the
// events of a post stay ordered within a partition.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	})
}

func newKafkaPublisher(w kafkaWriter) Publisher {
	return &kafkaPublisher{
		w: w,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, msg dto.EventMsg) error {
	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(msg.PostID, 10)),
		Value: msgJSON,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(msg.Type)},
		},
		Time: msg.OccurredAt,
	})
}

func (p *kafkaPublisher) Close() error {
	return p.w.Close()
}
