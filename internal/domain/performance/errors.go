package performance

import "errors"

// Performance domain errors
var (
	ErrSummaryNotFound = errors.New("monthly performance summary not found")

	// ErrNotScorable marks reconciliation attempts against a day that was
	// never checked out.
	ErrNotScorable = errors.New("attendance record has no recorded hours to reclassify")

	// ErrDataInconsistency flags a record whose stored regular+overtime
	// split no longer matches its clock times. Flagged, never silently
	// corrected.
	ErrDataInconsistency = errors.New("recorded hours do not match clock times")
)
