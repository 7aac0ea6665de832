// Package kafka publica eventos de pedidos en Kafka para consumidores aguas
// abajo (notificaciones, analítica). La publicación es post-commit y un fallo
// nunca revierte el pedido.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	apporder "github.com/tu-usuario/merkato-api/internal/application/order"
)

var _ apporder.Notifier = (*Publisher)(nil)

// OrderPlacedEvent evento emitido al confirmar un pedido.
type OrderPlacedEvent struct {
	OrderID       string          `json:"order_id"`
	Email         string          `json:"email"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Publisher productor síncrono de eventos de pedido.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher conecta el productor a los brokers indicados.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &Publisher{producer: producer, topic: topic}, nil
}

// OrderPlaced publica el evento de pedido confirmado, particionado por orderID.
func (p *Publisher) OrderPlaced(ctx context.Context, orderID, email string, total decimal.Decimal, paymentMethod string) error {
	event := OrderPlacedEvent{
		OrderID:       orderID,
		Email:         email,
		Total:         total,
		PaymentMethod: paymentMethod,
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(orderID),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	log.Debug().
		Str("order_id", orderID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("evento de pedido publicado")
	return nil
}

// Close cierra el productor.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
