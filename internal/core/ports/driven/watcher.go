package driven

import "context"

// SourceWatcher reports changes under a source folder.
type SourceWatcher interface {
	// Watch blocks until ctx is cancelled, calling onChange once per
	// settled burst of filesystem events.
	Watch(ctx context.Context, source string, onChange func()) error
}
