// Package messaging publishes closed invoices to RabbitMQ for renderers and
// accounting consumers outside the POS core.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/bar-pos/invoice"
	"github.com/yeremiapane/bar-pos/utils"
)

const (
	EventInvoiceClosed = "invoice_closed"
	publishTimeout     = 10 * time.Second
)

type InvoiceEvent struct {
	Event      string          `json:"event"`
	OccurredAt time.Time       `json:"occurredAt"`
	Invoice    invoice.Invoice `json:"invoice"`
}

// InvoicePublisher sends one persistent JSON message per closed session to a
// durable fanout exchange. A dropped connection is redialed on the next publish.
type InvoicePublisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewInvoicePublisher(url, exchange string) (*InvoicePublisher, error) {
	p := &InvoicePublisher{url: url, exchange: exchange}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *InvoicePublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}

	p.conn = conn
	p.ch = ch
	utils.InfoLogger.WithField("exchange", p.exchange).Info("Connected to RabbitMQ")
	return nil
}

func (p *InvoicePublisher) PublishInvoice(ctx context.Context, inv invoice.Invoice) error {
	msg, err := buildPublishing(inv, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.ch.PublishWithContext(ctx, p.exchange, "", false, false, msg); err != nil {
		return fmt.Errorf("publish invoice %s: %w", inv.Number, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"exchange": p.exchange,
		"invoice":  inv.Number,
		"size":     len(msg.Body),
	}).Debug("Invoice published")
	return nil
}

func (p *InvoicePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func buildPublishing(inv invoice.Invoice, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(InvoiceEvent{
		Event:      EventInvoiceClosed,
		OccurredAt: now,
		Invoice:    inv,
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal invoice %s: %w", inv.Number, err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    inv.Number,
		Type:         EventInvoiceClosed,
		Timestamp:    now,
		Body:         body,
	}, nil
}
