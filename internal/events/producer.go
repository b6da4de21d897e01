package events

import (
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

type KafkaProducer struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

func NewKafkaProducer(brokers string, logger *zap.Logger) (*KafkaProducer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           10,
	})

	if err != nil {
		return nil, err
	}

	// Drain async delivery reports.
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Error("event delivery failed",
						zap.String("key", string(ev.Key)),
						zap.Error(ev.TopicPartition.Error))
				}
			}
		}
	}()

	return &KafkaProducer{producer: p, logger: logger}, nil
}

func (p *KafkaProducer) PublishCheckoutCompleted(event CheckoutCompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := "checkout-events"
	sessionKey := fmt.Sprintf("SESSION#%s", event.SessionID)

	return p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(sessionKey),
		Value: data,
	}, nil)
}

func (p *KafkaProducer) HealthCheck() error {
	_, err := p.producer.GetMetadata(nil, false, 2000)
	return err
}

func (p *KafkaProducer) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
