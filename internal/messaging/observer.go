package messaging

import "context"

// Outcomes reported to an Observer.
const (
	OutcomePublished = "published"
	OutcomeProcessed = "processed"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

// Observer is told the outcome of every message sent or handled on topic.
type Observer func(topic, outcome string)

func noopObserver(string, string) {}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*consumerConfig)

type consumerConfig struct {
	observe Observer
}

// WithObserver reports each handled message as processed, failed (nacked) or
// dropped (undecodable, acked).
func WithObserver(observe Observer) ConsumerOption {
	return func(c *consumerConfig) {
		if observe != nil {
			c.observe = observe
		}
	}
}

// ObservePublish wraps publish so that every call is reported as published or failed.
func ObservePublish[T any](publish Publish[T], topic string, observe Observer) Publish[T] {
	return func(ctx context.Context, event *T) error {
		if err := publish(ctx, event); err != nil {
			observe(topic, OutcomeFailed)

			return err
		}

		observe(topic, OutcomePublished)

		return nil
	}
}
