package gateway

import "fmt"

// StatusError is returned for non-2xx responses. Error() yields the server's
// message when one was sent, so callers that only keep the text still see it.
type StatusError struct {
	Code    int
	Message string
}

func (e StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return e.Message
}
