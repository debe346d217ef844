// Package notify publishes match lifecycle events.
//
// Delivery is fire-and-forget: a failed publish is logged and never fails
// the write that triggered it.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	json "github.com/goccy/go-json"

	"github.com/oggyb/spacematch/internal/domain"
)

const (
	TopicMatchCreated  = "match.created"
	TopicMatchAccepted = "match.accepted"
	TopicMatchRejected = "match.rejected"
)

// Notifier is told about match lifecycle changes.
type Notifier interface {
	MatchCreated(ctx context.Context, m domain.Match)
	MatchAccepted(ctx context.Context, m domain.Match)
	MatchRejected(ctx context.Context, m domain.Match)
}

// MatchEvent is the JSON payload of every match topic.
type MatchEvent struct {
	MatchID    string    `json:"match_id"`
	SeekerID   string    `json:"seeker_id"`
	ProviderID string    `json:"provider_id"`
	ItemID     string    `json:"item_id"`
	Status     string    `json:"status"`
	Score      int       `json:"score"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends events to a Watermill publisher.
type Publisher struct {
	pub    message.Publisher
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher wraps pub.
func NewPublisher(pub message.Publisher, logger *slog.Logger) *Publisher {
	return &Publisher{pub: pub, logger: logger, now: time.Now}
}

// NewGoChannel returns an in-process pub/sub, used when no broker is configured.
func NewGoChannel(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
}

func (p *Publisher) MatchCreated(ctx context.Context, m domain.Match) {
	p.publish(ctx, TopicMatchCreated, m)
}

func (p *Publisher) MatchAccepted(ctx context.Context, m domain.Match) {
	p.publish(ctx, TopicMatchAccepted, m)
}

func (p *Publisher) MatchRejected(ctx context.Context, m domain.Match) {
	p.publish(ctx, TopicMatchRejected, m)
}

func (p *Publisher) publish(ctx context.Context, topic string, m domain.Match) {
	payload, err := json.Marshal(MatchEvent{
		MatchID:    m.ID,
		SeekerID:   m.SeekerID,
		ProviderID: m.ProviderID,
		ItemID:     m.ItemID,
		Status:     string(m.Status),
		Score:      m.Score.Total,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		p.logger.Error("encode match event", "topic", topic, "match_id", m.ID, "err", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("match_id", m.ID)

	if err := p.pub.Publish(topic, msg); err != nil {
		p.logger.Warn("publish match event", "topic", topic, "match_id", m.ID, "err", err)
		return
	}
	p.logger.Debug("match event published", "topic", topic, "match_id", m.ID)
}

// Nop drops every event.
type Nop struct{}

func (Nop) MatchCreated(context.Context, domain.Match)  {}
func (Nop) MatchAccepted(context.Context, domain.Match) {}
func (Nop) MatchRejected(context.Context, domain.Match) {}
