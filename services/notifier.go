package services

import (
	"context"

	"takvim.link/configs/configslog"

	"go.uber.org/zap"
)

// Yayınlanan değişiklik bildirimlerinin routing key'leri.
const (
	RoutingEventCreated   = "event.created"
	RoutingEventUpdated   = "event.updated"
	RoutingEventDeleted   = "event.deleted"
	RoutingEventRecovered = "event.recovered"
	RoutingEventsPurged   = "events.purged"
)

// IEventNotifier değişiklikleri aşağı akış tüketicilere iletir (rabbitmq.Publisher bunu uygular).
type IEventNotifier interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// NoopNotifier AMQP yapılandırılmadığında kullanılır.
type NoopNotifier struct{}

func (NoopNotifier) Publish(context.Context, string, interface{}) error { return nil }

// notify bildirim hatasını loglar; isteği başarısız saymaz.
func notify(ctx context.Context, n IEventNotifier, routingKey string, payload interface{}) {
	if n == nil {
		return
	}
	if err := n.Publish(ctx, routingKey, payload); err != nil {
		configslog.Log.Warn("Değişiklik bildirimi gönderilemedi", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
