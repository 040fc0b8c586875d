package notify

import (
	"context"
	"fmt"
	"log"

	"talentdesk/internal/eventbus"
	"talentdesk/internal/importer/application"
)

// ImportNotifier forwards commit events to a notification channel.
type ImportNotifier struct {
	channel Channel
	logger  *log.Logger
}

// NewImportNotifier constructs a notifier over the given channel.
func NewImportNotifier(channel Channel, logger *log.Logger) *ImportNotifier {
	return &ImportNotifier{channel: channel, logger: logger}
}

// Register subscribes the notifier to import commit events.
func (n *ImportNotifier) Register(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.TypeNameOf[application.ImportCommitted](), n.handle)
}

func (n *ImportNotifier) handle(ctx context.Context, event any) error {
	committed, ok := event.(application.ImportCommitted)
	if !ok {
		return nil
	}
	content := fmt.Sprintf("calendar import committed: file=%s created=%d updated=%d skipped=%d failed=%d",
		committed.SourceFile, committed.Created, committed.Updated, committed.Skipped, committed.Failed)
	if err := n.channel.Send(ctx, content); err != nil {
		if n.logger != nil {
			n.logger.Printf("import notification failed: %v", err)
		}
		return err
	}
	return nil
}
