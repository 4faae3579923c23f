package core

import "context"

// Authorizer guards mutating operations: it confirms the caller-supplied
// username belongs to a known teacher before any data is touched.
type Authorizer interface {
	Authorize(ctx context.Context, username string) error
}
