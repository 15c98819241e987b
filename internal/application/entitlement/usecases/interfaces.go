package usecases

// BindObserver records bind outcomes for metrics.
type BindObserver interface {
	ObserveBind(outcome string)
}

// Bind outcomes reported to BindObserver.
const (
	BindOutcomeSuccess  = "success"
	BindOutcomeRejected = "rejected"
	BindOutcomeConflict = "conflict"
	BindOutcomeError    = "error"
)

type nopBindObserver struct{}

func (nopBindObserver) ObserveBind(string) {}
