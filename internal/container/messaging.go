package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/analytics"
	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

const consumerGroupName = "url-shortener"

// MessagingPackage provides the Redis Streams publisher and subscriber and
// the typed publish functions the HTTP layer uses. Outside stream mode the
// publish functions discard events.
func MessagingPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		rc := do.MustInvoke[*RedisClient](i)
		if !rc.Enabled() {
			return nil, fmt.Errorf("publisher requires redis-addr")
		}

		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client:     rc.Client,
				Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
			},
			messaging.NewZapLoggerAdapter(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (message.Subscriber, error) {
		rc := do.MustInvoke[*RedisClient](i)
		if !rc.Enabled() {
			return nil, fmt.Errorf("subscriber requires redis-addr")
		}

		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        rc.Client,
				Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
				ConsumerGroup: consumerGroupName,
			},
			messaging.NewZapLoggerAdapter(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		return subscriber, nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		if do.MustInvoke[*Options](i).ClickSink != ClickSinkStream {
			return messaging.Discard[analytics.LinkCreatedEvent](), nil
		}

		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublishFunc[analytics.LinkCreatedEvent](group.Publisher(), analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.ClickRecorder, error) {
		if do.MustInvoke[*Options](i).ClickSink != ClickSinkStream {
			repo, err := do.Invoke[shortener.Repository](i)
			if err != nil {
				return nil, err
			}

			return shortener.ClickRecorderFunc(repo.IncrementClicks), nil
		}

		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		publish := messaging.NewPublishFunc[analytics.LinkClickedEvent](group.Publisher(), analytics.TopicLinkClicked)

		return analytics.NewClickPublisher(publish), nil
	})
}

// ConsumerPackage provides the consumer group that applies streamed clicks
// to the store and logs link creation.
func ConsumerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := do.Invoke[message.Subscriber](i)
		if err != nil {
			return nil, err
		}

		repo, err := do.Invoke[shortener.Repository](i)
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(
			messaging.NewConsumer(subscriber, analytics.TopicLinkClicked, analytics.NewClickCounter(repo, logger), logger),
			messaging.NewConsumer(subscriber, analytics.TopicLinkCreated, analytics.NewCreatedLogger(logger), logger),
		)

		return group, nil
	})
}
