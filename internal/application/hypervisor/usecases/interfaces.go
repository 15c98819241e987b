package usecases

// CheckinObserver receives one outcome per reported host.
type CheckinObserver interface {
	ObserveHostCheckin(outcome string)
}

const (
	HostOutcomeCreated   = "created"
	HostOutcomeUpdated   = "updated"
	HostOutcomeUnchanged = "unchanged"
	HostOutcomeFailed    = "failed"
)

type nopCheckinObserver struct{}

func (nopCheckinObserver) ObserveHostCheckin(string) {}
