package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/rafabene/minipost-backend/internal/domain/ports"
	"github.com/rafabene/minipost-backend/internal/infrastructure/config"
)

// Producer publica mensagens no broker configurado.
// A API não publica nada nos caminhos de requisição hoje; o producer
// conecta no startup e fica disponível, espelhando o comportamento do
// serviço que este backend substitui.
type Producer struct {
	writer *kafka.Writer
	logger ports.Logger
}

// NewProducer conecta ao broker e prepara um writer com compressão snappy
func NewProducer(cfg *config.KafkaConfig, log ports.Logger) (*Producer, error) {
	// Dial só para validar o broker no startup
	conn, err := kafka.Dial("tcp", cfg.Broker)
	if err != nil {
		return nil, fmt.Errorf("failed to connect producer: %w", err)
	}
	_ = conn.Close()

	writer := &kafka.Writer{
		Addr:        kafka.TCP(cfg.Broker),
		Topic:       cfg.Topic,
		Balancer:    &kafka.LeastBytes{},
		Compression: kafka.Snappy,
	}

	log.Info("producer connected successfully", "broker", cfg.Broker, "topic", cfg.Topic)

	return &Producer{
		writer: writer,
		logger: log,
	}, nil
}

// Publish envia uma mensagem para o tópico configurado
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value}); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close libera a conexão do writer
func (p *Producer) Close() error {
	return p.writer.Close()
}
