package auditoria

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// LogSink grava o evento no log estruturado.
type LogSink struct {
	Logger *zap.Logger
}

func (s *LogSink) Emitir(e Evento) error {
	s.Logger.Info("auditoria",
		zap.String("id", e.ID),
		zap.Uint("atorId", e.AtorID),
		zap.String("papel", e.Papel),
		zap.String("entidade", e.Entidade),
		zap.Uint("entidadeId", e.EntidadeID),
		zap.String("operacao", e.Operacao),
		zap.Time("timestamp", e.Timestamp),
	)
	return nil
}

// WebhookSink envia o evento por POST para uma URL externa.
type WebhookSink struct {
	URL    string
	Client *http.Client
}

func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{URL: url, Client: &http.Client{Timeout: 5 * time.Second}}
}

func (s *WebhookSink) Emitir(e Evento) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	resp, err := s.Client.Post(s.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}

const exchangeAuditoria = "auditoria"

// AMQPSink publica o evento em um exchange topic do RabbitMQ, com routing key
// <entidade>.<operacao>.
type AMQPSink struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewAMQPSink(url string) (*AMQPSink, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("falha ao abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(exchangeAuditoria, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("falha ao declarar exchange: %w", err)
	}
	return &AMQPSink{conn: conn, channel: ch}, nil
}

func (s *AMQPSink) Emitir(e Evento) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.channel.Publish(
		exchangeAuditoria,
		e.Entidade+"."+e.Operacao,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
		},
	)
}

func (s *AMQPSink) Close() {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
