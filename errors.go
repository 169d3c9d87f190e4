package transactioncloud

import "fmt"

// APIResponse is a snapshot of the raw HTTP response attached to client
// errors for caller inspection.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// InvalidResponseError means the server answered with a status code
// outside the success range for an operation that returns data.
type InvalidResponseError struct {
	Response APIResponse
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response from Transaction.cloud (status %d)", e.Response.StatusCode)
}

// MalformedResponseError means the server accepted the request but the
// payload was unusable: the body was not valid JSON, the JSON did not
// have the expected shape, or a domain object could not be built from
// it. When the cause is a model validation failure, Reason carries its
// message verbatim.
type MalformedResponseError struct {
	Response APIResponse
	Reason   string
	Cause    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from Transaction.cloud: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
