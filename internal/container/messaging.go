package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/samber/do"
	"github.com/serroba/urlkurz/internal/events"
	"github.com/serroba/urlkurz/internal/messaging"
	"github.com/serroba/urlkurz/internal/metrics"
	"github.com/serroba/urlkurz/internal/store"
	"go.uber.org/zap"
)

// ConsumerOptions configure the cache-warming consumer process.
type ConsumerOptions struct {
	RedisAddr       string `default:"localhost:6379"   envconfig:"REDIS_ADDR"`
	LogFormat       string `default:"console"          envconfig:"LOG_FORMAT"`
	LogLevel        string `default:"info"             envconfig:"LOG_LEVEL"`
	CacheTTLSeconds int    `default:"3600"             envconfig:"CACHE_TTL_SECONDS"`
	ConsumerGroup   string `default:"url-cache-warmer" envconfig:"CONSUMER_GROUP"`
	MetricsAddr     string `default:":9091"            envconfig:"METRICS_ADDR"`
}

// Options maps the consumer settings onto the shared Options used by the
// logger and Redis providers.
func (c *ConsumerOptions) Options() *Options {
	return &Options{
		RedisAddr:       c.RedisAddr,
		LogFormat:       c.LogFormat,
		LogLevel:        c.LogLevel,
		CacheTTLSeconds: c.CacheTTLSeconds,
	}
}

// ConsumerPackages registers every provider the consumer process needs.
func ConsumerPackages(injector *do.Injector, consumerOptions *ConsumerOptions) {
	do.ProvideValue(injector, consumerOptions)
	do.ProvideValue(injector, consumerOptions.Options())
	LoggerPackage(injector)
	MetricsPackage(injector)
	RedisPackage(injector)
	RedisCachePackage(injector)
	ConsumerGroupPackage(injector)
}

// PublisherGroupPackage provides *messaging.PublisherGroup and the typed
// url.shortened publish function. With events disabled the function drops events.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		client := do.MustInvoke[*Redis](i).Client

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client:     client,
				Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[events.URLShortened], error) {
		opts := do.MustInvoke[*Options](i)
		if !opts.PublishEvents {
			return messaging.NoopPublish[events.URLShortened](), nil
		}

		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return messaging.ObservePublish(
			messaging.NewPublishFunc[events.URLShortened](group.Publisher(), events.TopicURLShortened),
			events.TopicURLShortened,
			do.MustInvoke[*metrics.Metrics](i).ObserveEvent,
		), nil
	})
}

// ConsumerGroupPackage provides *messaging.ConsumerGroup with the cache warmer attached.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (message.Subscriber, error) {
		opts := do.MustInvoke[*ConsumerOptions](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        do.MustInvoke[*Redis](i).Client,
				Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
				ConsumerGroup: opts.ConsumerGroup,
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}

		return subscriber, nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		subscriber := do.MustInvoke[message.Subscriber](i)
		cache := do.MustInvoke[*store.RedisCache](i)
		m := do.MustInvoke[*metrics.Metrics](i)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			events.TopicURLShortened,
			events.NewCacheWarmer(cache),
			logger,
			messaging.WithObserver(m.ObserveEvent),
		))

		return group, nil
	})
}
