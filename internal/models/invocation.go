package models

// ErrorKind classifies why an invocation failed.
type ErrorKind string

const (
	// ErrorKindValidation covers failures detected before any request is
	// sent: a missing mandatory parameter or an unusable projection.
	ErrorKindValidation ErrorKind = "VALIDATION"

	// ErrorKindClient covers local setup failures such as unreadable
	// credentials or configuration.
	ErrorKindClient ErrorKind = "CLIENT"

	// ErrorKindService is an error response returned by Cost Explorer.
	ErrorKindService ErrorKind = "SERVICE"

	// ErrorKindNetwork is a transport failure, including name resolution.
	ErrorKindNetwork ErrorKind = "NETWORK"

	// ErrorKindCanceled means the invocation was interrupted.
	ErrorKindCanceled ErrorKind = "CANCELED"
)

// ErrorRecord is the structured form of a failed invocation. Err keeps the
// original error chain for callers that want errors.Is / errors.As.
type ErrorRecord struct {
	Kind      ErrorKind `json:"kind"`
	Operation string    `json:"operation"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message"`
	Fault     string    `json:"fault,omitempty"`
	Err       error     `json:"-"`
}

// Error implements error so a record can be returned where an error is
// expected.
func (r *ErrorRecord) Error() string {
	if r.Code != "" {
		return r.Operation + ": " + r.Code + ": " + r.Message
	}
	return r.Operation + ": " + r.Message
}

// Unwrap returns the original error.
func (r *ErrorRecord) Unwrap() error { return r.Err }

// Result is the single output record of one command invocation. Exactly one
// of Output, Declined or Error describes the outcome; Warnings may accompany
// any of them.
type Result struct {
	Operation string       `json:"operation"`
	Output    any          `json:"output,omitempty"`
	Warnings  []string     `json:"warnings,omitempty"`
	Declined  bool         `json:"declined,omitempty"`
	Error     *ErrorRecord `json:"error,omitempty"`
}

// Failed reports whether the invocation produced an error record.
func (r Result) Failed() bool { return r.Error != nil }
