package domain

import "errors"

// Rejection is a business decision refusing a request
// Kind is a package sentinel so callers can use errors.Is
// Reason is a stable machine-readable code (e.g. "TableConflict")
type Rejection struct {
	Kind    error
	Reason  string
	Message string
	Details map[string]any
}

func NewRejection(kind error, reason, message string, details map[string]any) *Rejection {
	return &Rejection{Kind: kind, Reason: reason, Message: message, Details: details}
}

func (r *Rejection) Error() string {
	if r.Message == "" {
		return r.Kind.Error()
	}
	return r.Kind.Error() + ": " + r.Message
}

func (r *Rejection) Unwrap() error {
	return r.Kind
}

// AsRejection extracts a Rejection from an error chain
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
