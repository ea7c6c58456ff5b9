package port

// Metrics records service level measurements
type Metrics interface {
	PollTick()
	PollOutcome(state string)
	LibraryPage(served int, dropped int)
	SignedURLFailure()
	OwnershipViolation()
	StorageDeleteFailure()
}

// NopMetrics discards every measurement
type NopMetrics struct{}

func (NopMetrics) PollTick()             {}
func (NopMetrics) PollOutcome(string)    {}
func (NopMetrics) LibraryPage(int, int)  {}
func (NopMetrics) SignedURLFailure()     {}
func (NopMetrics) OwnershipViolation()   {}
func (NopMetrics) StorageDeleteFailure() {}
