package client

import (
	"errors"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TransportError means that no HTTP response was received: the connection failed, the request
// timed out, or it was cancelled.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Request failed - no response (%s %s: %s)", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError means that a response was received but it had a non-2xx status, or its body
// was not valid JSON.
type ProtocolError struct {
	// Operation names what was being attempted, such as "Registration".
	Operation  string
	StatusCode int
	// Message is taken from the error body, if there was one.
	Message string
	// Err is set if the body could not be parsed.
	Err error
}

func (e *ProtocolError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("Invalid JSON response: %s", e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
	default:
		return fmt.Sprintf("%s failed with status %d", e.Operation, e.StatusCode)
	}
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ContractError means that a successful response did not have the expected shape.
type ContractError struct {
	Message string
	Body    ldvalue.Value
}

func (e *ContractError) Error() string {
	return e.Message
}

// Kind classifies err as "transport", "protocol" or "contract", or returns "" for anything else.
func Kind(err error) string {
	var te *TransportError
	var pe *ProtocolError
	var ce *ContractError
	switch {
	case errors.As(err, &te):
		return "transport"
	case errors.As(err, &pe):
		return "protocol"
	case errors.As(err, &ce):
		return "contract"
	default:
		return ""
	}
}
