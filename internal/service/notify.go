package service

import (
	"context"

	"github.com/Skotchmaster/music_catalog/internal/events"
	"github.com/Skotchmaster/music_catalog/internal/search"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

// notifier fans catalog changes out to Kafka and the search index. Failures
// are logged and never surface to the caller.
type notifier struct {
	Events events.Publisher
	Index  search.Index
}

func (n notifier) publish(ctx context.Context, topic string, ev events.Event) {
	if n.Events == nil {
		return
	}
	if p, ok := PrincipalFromContext(ctx); ok && ev.ActorID == "" {
		ev.ActorID = p.UserID
	}
	if err := n.Events.Publish(ctx, topic, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", ev.Type, "error", err)
	}
}

func (n notifier) indexPut(ctx context.Context, doc transport.SearchHit) {
	if n.Index == nil {
		return
	}
	if err := n.Index.Put(ctx, doc); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "kind", doc.Kind, "id", doc.ID, "error", err)
	}
}

func (n notifier) indexRemove(ctx context.Context, kind, id string) {
	if n.Index == nil {
		return
	}
	if err := n.Index.Remove(ctx, kind, id); err != nil {
		logging.FromContext(ctx).Warn("search_remove_error", "kind", kind, "id", id, "error", err)
	}
}
