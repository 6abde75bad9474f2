// Package events delivers change notifications for collections to realtime
// subscribers. Delivery is best-effort: publishing happens in the background
// and failures are logged and dropped.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

const (
	CollectionUpdated    = "collection-updated"
	CollectionDeleted    = "collection-deleted"
	CollaboratorsUpdated = "collaborators-updated"
	ItemCreated          = "item-created"
	ItemUpdated          = "item-updated"
	ItemDeleted          = "item-deleted"
	VoteUpdated          = "vote-updated"
	CommentAdded         = "comment-added"
	CommentUpdated       = "comment-updated"
	CommentDeleted       = "comment-deleted"
	ChecklistUpdated     = "checklist-updated"
)

const defaultPublishTimeout = 5 * time.Second

type (
	Notifier interface {
		// Notify publishes an event on a channel without blocking the caller.
		Notify(channelKey string, eventName string, payload any)
	}

	// Publisher is a transport that notifications are fanned out to.
	Publisher interface {
		Name() string
		Publish(ctx context.Context, notification Notification) error
	}

	Notification struct {
		ChannelKey string    `json:"channel"`
		Event      string    `json:"event"`
		Payload    any       `json:"payload"`
		Timestamp  time.Time `json:"timestamp"`
	}

	notifier struct {
		publishers []Publisher
		timeout    time.Duration
	}
)

// ChannelKey is the channel all events of a collection are published on.
func ChannelKey(collectionId string) string {
	return fmt.Sprintf("brain-dump-%s", collectionId)
}

func CreateNotifier(publishers ...Publisher) Notifier {
	return &notifier{
		publishers: publishers,
		timeout:    defaultPublishTimeout,
	}
}

func (n *notifier) Notify(channelKey string, eventName string, payload any) {
	notification := Notification{
		ChannelKey: channelKey,
		Event:      eventName,
		Payload:    payload,
		Timestamp:  time.Now(),
	}

	for _, publisher := range n.publishers {
		go n.publish(publisher, notification)
	}
}

func (n *notifier) publish(publisher Publisher, notification Notification) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("Notification publisher panicked", "publisher", publisher.Name(), "event", notification.Event, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := publisher.Publish(ctx, notification); err != nil {
		log.Warn("Failed to publish notification", "publisher", publisher.Name(), "event", notification.Event, "channel", notification.ChannelKey, "err", err)
	}
}
