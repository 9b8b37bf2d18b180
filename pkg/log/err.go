package log

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// StacktraceKey is the event key under which Err records the stack trace.
const StacktraceKey = "stacktrace"

// Err adds an error and, when available, its cockroachdb stack trace to the
// event. Errors that additionally implement zerolog.LogObjectMarshaler (all
// of pkg/errors' types do) are embedded with their structured fields; the
// chain is unwrapped so the marshaler is found beneath the WithStack wrapper
// pkg/errors puts around every error it constructs.
func Err(e *zerolog.Event, err error) *zerolog.Event {
	if err == nil {
		return e
	}
	e = e.Err(err)
	var marshaler zerolog.LogObjectMarshaler
	if errors.As(err, &marshaler) {
		e = e.Object("error_detail", marshaler)
	}
	if trace := extractStacktrace(err); trace != "" {
		e = e.Str(StacktraceKey, trace)
	}
	return e
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
