package grid

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ReleaseFunc undoes one acquisition, such as removing an event listener.
type ReleaseFunc func() error

// releaseList records acquisitions and unwinds them in reverse order.
// Every entry is released exactly once, whether teardown is normal or
// follows a failed initialization.
type releaseList struct {
	names    []string
	releases []ReleaseFunc
}

// add records a release under name. Nil releases are ignored.
func (l *releaseList) add(name string, release ReleaseFunc) {
	if release == nil {
		return
	}
	l.names = append(l.names, name)
	l.releases = append(l.releases, release)
}

// Len returns the number of outstanding acquisitions.
func (l *releaseList) Len() int { return len(l.releases) }

// unwind releases everything, last acquired first, and empties the list.
// A failing release does not stop the others; all failures are returned.
func (l *releaseList) unwind() error {
	var result *multierror.Error
	for i := len(l.releases) - 1; i >= 0; i-- {
		if err := l.releases[i](); err != nil {
			result = multierror.Append(result, fmt.Errorf("release %s: %w", l.names[i], err))
		}
	}
	l.names = nil
	l.releases = nil
	return result.ErrorOrNil()
}
