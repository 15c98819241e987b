package usecases

import (
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/logger"
)

// publishAfterCommit hands events to the publisher once the transaction
// that produced them has committed. Publish failures are logged only; the
// consumer change itself already succeeded.
func publishAfterCommit(publisher events.EventPublisher, log logger.Interface, evts []events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishAll(evts); err != nil {
		log.Warnw("failed to publish consumer events", "count", len(evts), "error", err)
	}
}
