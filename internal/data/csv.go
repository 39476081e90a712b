package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/svix"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CSVStore reads chains laid out as {dir}/{date}/{instrument}.csv.
type CSVStore struct {
	dir    string
	logger *zap.Logger
}

// Compile-time interface verification
var _ Loader = (*CSVStore)(nil)

func NewCSVStore(dir string, logger *zap.Logger) *CSVStore {
	return &CSVStore{dir: dir, logger: logger}
}

func (s *CSVStore) LoadQuotes(ctx context.Context, date, instrument string) ([]svix.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := ChainPath(s.dir, date, instrument)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s/%s: %w", date, instrument, ErrNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	quotes := make([]svix.Quote, 0, len(records))
	for i, r := range records {
		q, err := r.Quote()
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
		quotes = append(quotes, q)
	}

	s.logger.Debug("loaded quotes",
		zap.String("date", date),
		zap.String("instrument", instrument),
		zap.Int("count", len(quotes)),
	)
	return quotes, nil
}

func (s *CSVStore) Instruments(date string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("date %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("reading date directory: %w", err)
	}

	var instruments []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		instruments = append(instruments, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(instruments)
	return instruments, nil
}

// LatestDate scans the data directory for date folders and returns the most
// recent one that is not empty.
func (s *CSVStore) LatestDate() (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("reading data directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if !entry.IsDir() || !datePattern.MatchString(entry.Name()) {
			continue
		}
		subEntries, err := os.ReadDir(filepath.Join(s.dir, entry.Name()))
		if err == nil && len(subEntries) > 0 {
			dates = append(dates, entry.Name())
		}
	}

	if len(dates) == 0 {
		return "", fmt.Errorf("no date folders in %s: %w", s.dir, ErrNotFound)
	}

	// YYYY-MM-DD sorts lexicographically
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates[0], nil
}

// ReadRecords decodes a chain file with a header row.
func ReadRecords(r io.Reader) ([]*QuoteRecord, error) {
	var records []*QuoteRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	return records, nil
}

// WriteRecords encodes records with a header row.
func WriteRecords(w io.Writer, records []*QuoteRecord) error {
	return gocsv.Marshal(&records, w)
}
