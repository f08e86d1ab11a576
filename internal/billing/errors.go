package billing

import "fmt"

// APIError is a non-2xx response from the billing API.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("billing API %s: status %d: %s", e.Path, e.Status, e.Body)
}

// Transient reports whether the request is worth retrying. Rate limits
// and server-side failures are; every other 4xx is a caller problem.
func (e *APIError) Transient() bool {
	return e.Status == 429 || e.Status >= 500
}
