package kafka

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rafabene/minipost-backend/internal/domain/ports"
	"github.com/rafabene/minipost-backend/internal/infrastructure/config"
)

// Consumer lê e loga mensagens do tópico configurado.
// Nenhuma lógica de negócio acontece aqui: o par producer/consumer
// existe apenas para conectar e registrar o que chega.
type Consumer struct {
	reader *kafka.Reader
	logger ports.Logger
}

// NewConsumer cria um consumer no group configurado, lendo do início
// do tópico
func NewConsumer(cfg *config.KafkaConfig, log ports.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{cfg.Broker},
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		Dialer: &kafka.Dialer{
			Timeout:  3 * time.Second,
			ClientID: cfg.ClientID,
		},
	})

	return &Consumer{
		reader: reader,
		logger: log,
	}
}

// Run consome mensagens até o contexto ser cancelado
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", "topic", c.reader.Config().Topic, "group", c.reader.Config().GroupID)

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		c.logger.Info("received message",
			"value", string(msg.Value),
			"topic", msg.Topic,
			"partition", msg.Partition,
		)
	}
}

// Close libera a conexão do reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
