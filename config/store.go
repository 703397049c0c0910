package config

import (
	"fmt"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/storage/disk"
	"github.com/go-theft-auto/grid/storage/inmem"
	"github.com/go-theft-auto/grid/storage/sqlite"
)

// Store is a width store that holds resources until closed.
type Store interface {
	grid.KV
	Close() error
}

// OpenStore opens the driver named in s. The none driver returns a nil
// store, which disables width persistence.
func OpenStore(s Settings) (Store, error) {
	switch s.StorageDriver {
	case DriverNone:
		return nil, nil
	case DriverInmem, "":
		return inmem.New(), nil
	case DriverBadger:
		st, err := disk.New(disk.Options{Dir: s.StoragePath})
		if err != nil {
			return nil, err
		}
		return st, nil
	case DriverSQLite:
		st, err := sqlite.Open(s.StoragePath)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", s.StorageDriver)
}
