// Package timeutil implements time utilities.
package timeutil

import "time"

// TimeFrame records the start/end time frame of a benchmark pass.
type TimeFrame struct {
	// StartUTC is the time the pass started.
	StartUTC time.Time `json:"start-utc" read-only:"true"`
	// StartUTCRFC3339Nano is the start timestamp in RFC3339 format with nano-second scale.
	StartUTCRFC3339Nano string `json:"start-utc-rfc3339-nano" read-only:"true"`
	// EndUTC is the time the pass completed.
	EndUTC time.Time `json:"end-utc" read-only:"true"`
	// EndUTCRFC3339Nano is the end timestamp in RFC3339 format with nano-second scale.
	EndUTCRFC3339Nano string `json:"end-utc-rfc3339-nano" read-only:"true"`
	// Took is the duration the pass took.
	Took time.Duration `json:"took" read-only:"true"`
	// TookString is the duration the pass took, in human-readable form.
	TookString string `json:"took-string" read-only:"true"`
}

// NewTimeFrame returns a new TimeFrame.
func NewTimeFrame(start time.Time, end time.Time) TimeFrame {
	took := end.Sub(start)
	return TimeFrame{
		StartUTC:            start.UTC(),
		StartUTCRFC3339Nano: start.UTC().Format(time.RFC3339Nano),
		EndUTC:              end.UTC(),
		EndUTCRFC3339Nano:   end.UTC().Format(time.RFC3339Nano),
		Took:                took,
		TookString:          took.String(),
	}
}
