// Package transport ships a collection cycle's samples to a metrics
// backend. The collector only hands over a name-to-value mapping; catalog
// metadata (description, group) is attached here, at the wire boundary.
package transport

import (
	"context"

	"cryopush/internal/collector"
	"cryopush/internal/logger"
)

// Pusher sends one cycle's result to a backend. Implementations must always
// include the heartbeat timestamp, even when the sample map is empty, so
// downstream consumers can tell "ran and found nothing" from "never ran".
type Pusher interface {
	Push(ctx context.Context, result *collector.Result, instance string) error
}

// NopPusher logs what would have been sent and discards it. Used for dry
// runs and the "none" transport setting.
type NopPusher struct{}

// NewNop creates a no-op pusher
func NewNop() *NopPusher {
	return &NopPusher{}
}

// Push logs the sample count and drops the data
func (p *NopPusher) Push(ctx context.Context, result *collector.Result, instance string) error {
	logger.Info("transport disabled: discarding %d sample(s) for instance %s",
		len(result.Samples), instance)
	return nil
}
