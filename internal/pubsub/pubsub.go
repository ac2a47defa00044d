package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicAdjustmentCommitted carries one message per successfully committed
// billing adjustment. The payload is the serialized audit entry.
const TopicAdjustmentCommitted = "adjustment.committed"

// PubSub is the event bus boundary used to notify read-side consumers that
// an adjustment was committed.
type PubSub interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

type goChannelPubSub struct {
	ch *gochannel.GoChannel
}

// NewGoChannelPubSub creates an in-process pub/sub backed by watermill's
// gochannel transport.
func NewGoChannelPubSub() PubSub {
	return &goChannelPubSub{
		ch: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
	}
}

func (p *goChannelPubSub) Publish(ctx context.Context, topic string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.ch.Publish(topic, msg)
}

func (p *goChannelPubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.ch.Subscribe(ctx, topic)
}

func (p *goChannelPubSub) Close() error {
	return p.ch.Close()
}
