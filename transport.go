package transactioncloud

import "net/http"

// Doer performs one HTTP round trip. *http.Client satisfies it. The
// client never constructs a transport on its own; callers pass one in
// and keep ownership of timeout and retry policy.
//
//go:generate mockgen -destination=mocks/mock_transport.go -package=mocks -source=transport.go Doer
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
