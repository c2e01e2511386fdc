package file

import (
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"
)

// flockFor takes the store's exclusive lock from outside the store.
func flockFor(t *testing.T, s *Store) *flock.Flock {
	t.Helper()
	lock := flock.New(filepath.Join(s.Location(), lockFile))
	require.NoError(t, lock.Lock())
	return lock
}
