// Package events emits the domain events of a processed upload.
package events

import (
	"context"
	"encoding/json"
	appConfig "fixtureloader/pkg/config"
	"fmt"
	"time"
)

// RedisPublisher is the publishing surface needed from the redis client.
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message any) error
}

// FixturesPublished is emitted after the upload of a season was persisted.
type FixturesPublished struct {
	SeasonID    uint      `json:"season_id"`
	GradeIDs    []uint    `json:"grade_ids"`
	GameCount   int       `json:"game_count"`
	PublishedAt time.Time `json:"published_at"`
}

// Emitter publishes the domain events on the configured channel.
type Emitter struct {
	redis   RedisPublisher
	channel string
}

// NewEmitter creates the event emitter.
func NewEmitter(redis RedisPublisher) *Emitter {
	return &Emitter{
		redis:   redis,
		channel: appConfig.Upload.EventChannel,
	}
}

// EmitFixturesPublished publishes the event as a JSON payload.
func (e *Emitter) EmitFixturesPublished(ctx context.Context, event FixturesPublished) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("couldn't marshal the event: %v", err)
	}

	if err := e.redis.Publish(ctx, e.channel, payload); err != nil {
		return fmt.Errorf("couldn't publish the event: %v", err)
	}

	return nil
}
