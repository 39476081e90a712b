package data

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/dgnsrekt/etf-svix/internal/svix"
)

var (
	ErrNotFound  = errors.New("data not found")
	ErrBadRecord = errors.New("malformed quote record")
)

// Loader provides stored option chains by date and instrument
type Loader interface {
	// LoadQuotes returns every quote stored for the instrument on date
	LoadQuotes(ctx context.Context, date, instrument string) ([]svix.Quote, error)

	// Instruments lists instruments stored for date, sorted
	Instruments(date string) ([]string, error)

	// LatestDate returns the newest date folder holding data
	LatestDate() (string, error)
}

// ChainPath is where the chain of an instrument fetched on date is stored.
func ChainPath(baseDir, date, instrument string) string {
	return filepath.Join(baseDir, date, instrument+".csv")
}
