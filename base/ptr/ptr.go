package ptr

import "time"

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Time returns nil for the zero time, so omitempty drops it
func Time(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	return &value
}
