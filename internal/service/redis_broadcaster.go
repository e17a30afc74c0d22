package service

import (
	"context"
	"encoding/json"
	"fmt"

	"mediaccess/internal/store"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultBroadcastChannel is the pub/sub channel every dashboard listens on
const DefaultBroadcastChannel = "mediaccess:events"

// Publisher is the part of *redis.Client the broadcaster needs
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisBroadcaster publishes log and notification events so every connected
// dashboard sees the same feed. Mutation markers are not broadcast.
type RedisBroadcaster struct {
	client  Publisher
	channel string
	log     *logrus.Logger
}

func NewRedisBroadcaster(client Publisher, channel string, log *logrus.Logger) *RedisBroadcaster {
	if channel == "" {
		channel = DefaultBroadcastChannel
	}
	return &RedisBroadcaster{
		client:  client,
		channel: channel,
		log:     log,
	}
}

func (b *RedisBroadcaster) Name() string {
	return "redis-broadcaster"
}

func (b *RedisBroadcaster) Handle(ctx context.Context, ev store.Event) error {
	if ev.Kind == store.EventMutation {
		return nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Kind, err)
	}

	receivers, err := b.client.Publish(ctx, b.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", b.channel, err)
	}

	b.log.Debugf("Broadcast %s event from %s to %d subscribers", ev.Kind, ev.Operation, receivers)
	return nil
}
