package kafka

import (
	"context"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const initTimeout time.Duration = 10 * time.Second

// Config represents the configuration for a Kafka client.
type Config struct {
	Brokers           []string
	ConsumeTopics     []string
	ConsumerGroup     string
	ConsumePartitions map[string]map[int32]kgo.Offset
	DisableAutoCommit bool
}

// Option is a functional option type that allows us to configure the Kafka client.
type Option func(*Config)

// New creates a new Kafka client.
func New(ctx context.Context, options ...Option) (*kgo.Client, error) {
	_, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	c := &Config{}

	for _, opt := range options {
		opt(c)
	}

	if len(c.Brokers) == 0 {
		return nil, status.Errorf(codes.InvalidArgument, "failed to initialize Kafka client: missing brokers")
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(c.Brokers...),
		kgo.AllowAutoTopicCreation(),
	}

	if len(c.ConsumeTopics) != 0 {
		opts = append(opts, kgo.ConsumeTopics(c.ConsumeTopics...))
	}

	if c.ConsumerGroup != "" {
		opts = append(opts, kgo.ConsumerGroup(c.ConsumerGroup))
	}

	if len(c.ConsumePartitions) != 0 {
		opts = append(opts, kgo.ConsumePartitions(c.ConsumePartitions))
	}

	if c.DisableAutoCommit {
		opts = append(opts, kgo.DisableAutoCommit())
	}

	return kgo.NewClient(opts...)
}

// WithBrokers sets the Kafka brokers.
func WithBrokers(brokers ...string) Option {
	return func(c *Config) {
		c.Brokers = brokers
	}
}

// WithConsumeTopics sets the Kafka consume topics.
func WithConsumeTopics(topic ...string) Option {
	return func(c *Config) {
		c.ConsumeTopics = topic
	}
}

// WithConsumerGroup sets the Kafka consumer group.
func WithConsumerGroup(group string) Option {
	return func(c *Config) {
		c.ConsumerGroup = group
	}
}

// WithConsumePartitions sets explicit partition offsets to consume from,
// used to resume a log stream at a cursor.
func WithConsumePartitions(topic string, offsets map[int32]kgo.Offset) Option {
	return func(c *Config) {
		if c.ConsumePartitions == nil {
			c.ConsumePartitions = make(map[string]map[int32]kgo.Offset)
		}
		c.ConsumePartitions[topic] = offsets
	}
}

// WithDisableAutoCommit disables the Kafka auto commit.
func WithDisableAutoCommit() Option {
	return func(c *Config) {
		c.DisableAutoCommit = true
	}
}
