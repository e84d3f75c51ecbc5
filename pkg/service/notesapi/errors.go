package notesapi

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Reason classifies why a call failed
type Reason int

const (
	// ReasonNetwork means no response was obtained
	ReasonNetwork Reason = iota + 1
	// ReasonProtocol means a response arrived but its body was not a JSON object
	ReasonProtocol
	// ReasonRejected means the server answered with a non-success status
	ReasonRejected
)

func (r Reason) String() string {
	switch r {
	case ReasonNetwork:
		return "network"
	case ReasonProtocol:
		return "protocol"
	case ReasonRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Sentinel errors matching Failure reasons with errors.Is
var (
	ErrNetwork  = goerr.New("network failure")
	ErrProtocol = goerr.New("protocol failure")
	ErrRejected = goerr.New("request rejected")
)

const (
	// FallbackRejectedMessage is used when a rejection carries no error field
	FallbackRejectedMessage = "Request failed"

	networkMessage  = "Network error. Please try again."
	protocolMessage = "Unexpected response from server"
)

// Failure is the single failure shape every call returns
type Failure struct {
	Reason  Reason
	Status  int    // HTTP status when known; always 0 for ReasonNetwork
	Message string // server supplied message for ReasonRejected
	Err     error  // underlying cause, if any
}

func (f *Failure) Error() string {
	switch f.Reason {
	case ReasonRejected:
		return fmt.Sprintf("rejected (status %d): %s", f.Status, f.Message)
	case ReasonProtocol:
		msg := "protocol failure"
		if f.Status != 0 {
			msg = fmt.Sprintf("protocol failure (status %d)", f.Status)
		}
		if f.Err != nil {
			msg += ": " + f.Err.Error()
		}
		return msg
	default:
		if f.Err != nil {
			return "network failure: " + f.Err.Error()
		}
		return "network failure"
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is lets errors.Is(err, ErrNetwork) and friends match on the reason
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return f.Reason == ReasonNetwork
	case ErrProtocol:
		return f.Reason == ReasonProtocol
	case ErrRejected:
		return f.Reason == ReasonRejected
	}
	return false
}

// UserMessage is the human readable text shown in a status area
func (f *Failure) UserMessage() string {
	switch f.Reason {
	case ReasonRejected:
		if f.Message != "" {
			return f.Message
		}
		return FallbackRejectedMessage
	case ReasonProtocol:
		return protocolMessage
	default:
		return networkMessage
	}
}

// AsFailure extracts a *Failure from err
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// UserMessage returns the status text for any error returned by this package.
// Errors that are not a Failure are reported like a network failure.
func UserMessage(err error) string {
	if f, ok := AsFailure(err); ok {
		return f.UserMessage()
	}
	return networkMessage
}

func networkFailure(err error, method, endpoint string) *Failure {
	return &Failure{
		Reason: ReasonNetwork,
		Err:    goerr.Wrap(err, "request failed", goerr.V("method", method), goerr.V("endpoint", endpoint)),
	}
}

func protocolFailure(err error, status int, method, endpoint string) *Failure {
	return &Failure{
		Reason: ReasonProtocol,
		Status: status,
		Err:    goerr.Wrap(err, "malformed response", goerr.V("method", method), goerr.V("endpoint", endpoint), goerr.V("status", status)),
	}
}
