package client

import (
	"encoding/json"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is an HTTP response whose body has already been read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// JSON parses the body. Unlike ldvalue.Parse, it reports malformed JSON as an error instead of
// returning a null value.
func (r *Response) JSON() (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null(), err
	}
	return v, nil
}

// ErrorMessage returns the "error" property of a JSON error body, or "message" if there is no
// "error". It returns "" if the body is not a JSON object or has neither.
func (r *Response) ErrorMessage() string {
	v, err := r.JSON()
	if err != nil || v.Type() != ldvalue.ObjectType {
		return ""
	}
	for _, key := range []string{"error", "message"} {
		if m := v.GetByKey(key); m.Type() == ldvalue.StringType && m.StringValue() != "" {
			return m.StringValue()
		}
	}
	return ""
}

// StatusError returns nil for a 2xx response and a *ProtocolError otherwise. The operation
// name is used in the error message.
func (r *Response) StatusError(operation string) error {
	if r.IsSuccess() {
		return nil
	}
	return &ProtocolError{
		Operation:  operation,
		StatusCode: r.StatusCode,
		Message:    r.ErrorMessage(),
	}
}

// Decode checks the status and parses the body as JSON, returning a *ProtocolError if either
// is unacceptable.
func (r *Response) Decode(operation string) (ldvalue.Value, error) {
	if err := r.StatusError(operation); err != nil {
		return ldvalue.Null(), err
	}
	v, err := r.JSON()
	if err != nil {
		return ldvalue.Null(), &ProtocolError{
			Operation:  operation,
			StatusCode: r.StatusCode,
			Err:        err,
		}
	}
	return v, nil
}
