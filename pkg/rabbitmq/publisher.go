// Package rabbitmq etkinlik değişikliklerini bir topic exchange'e yayınlar.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

var ErrNotOpen = errors.New("rabbitmq bağlantısı açık değil")

type Publisher struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url, exchange string) *Publisher {
	return &Publisher{url: url, exchange: exchange}
}

// Open bağlantıyı kurar ve exchange'i (topic, durable) tanımlar.
func (p *Publisher) Open() (err error) {
	if p.url == "" {
		return errors.New("amqp bağlantı adresi gerekli")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn, err = amqp.Dial(p.url); err != nil {
		return err
	}
	if p.channel, err = p.conn.Channel(); err != nil {
		p.conn.Close()
		p.conn = nil
		return err
	}
	if err = p.channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		p.closeLocked()
		return err
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

// closeLocked mu tutulurken çağrılır.
func (p *Publisher) closeLocked() error {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

// Publish payload'ı JSON olarak routing key ile gönderir.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// amqp.Channel eşzamanlı Publish için güvenli değil.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return ErrNotOpen
	}
	return p.channel.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
