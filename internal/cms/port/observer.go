package port

import "time"

// Observer receives operation outcomes for metrics.
type Observer interface {
	ObserveOperation(operation string, duration time.Duration, err error)
	ObserveUploadBytes(category string, size int64)
}

// NopObserver discards all observations.
type NopObserver struct{}

func (NopObserver) ObserveOperation(string, time.Duration, error) {}
func (NopObserver) ObserveUploadBytes(string, int64)              {}
