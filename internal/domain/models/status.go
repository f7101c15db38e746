package models

// SubmissionStatus enumerates the create form's request states.
type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "idle"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionSucceeded  SubmissionStatus = "succeeded"
	SubmissionFailed     SubmissionStatus = "failed"
)

// Busy reports whether a submission is in flight.
func (s SubmissionStatus) Busy() bool {
	return s == SubmissionSubmitting
}

// ListStatus enumerates the product list's load states.
type ListStatus string

const (
	ListInitializing ListStatus = "initializing"
	ListLoaded       ListStatus = "loaded"
	ListErrored      ListStatus = "errored"
)
