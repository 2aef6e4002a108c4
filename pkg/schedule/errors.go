package schedule

import "fmt"

// ConfigError reports an invalid scheduler configuration. It is fatal and
// surfaced immediately; there is nothing to retry.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "schedule: invalid configuration: " + e.Reason
}

// InsufficientSlotsError reports that the requested post count exceeds the
// available weekday/hour slots in one week.
type InsufficientSlotsError struct {
	Requested int
	Available int
}

func (e *InsufficientSlotsError) Error() string {
	return fmt.Sprintf("schedule: %d posts requested but only %d weekday slots available", e.Requested, e.Available)
}
