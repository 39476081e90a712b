package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/api"
	"github.com/dgnsrekt/etf-svix/internal/data"
	"github.com/dgnsrekt/etf-svix/internal/staging"
)

type Manager struct {
	client   api.Client
	staging  *staging.Manager
	maxPages int
	pageSize int
	logger   *zap.Logger
}

type BatchResult struct {
	Total    int
	Success  int
	Skipped  int
	NotFound int
	Failed   int
	Rows     int
	Dropped  int
	// Truncated counts chains cut off at maxPages while pages were still full.
	Truncated int
	Errors    []string
}

func NewManager(client api.Client, staging *staging.Manager, maxPages, pageSize int, logger *zap.Logger) *Manager {
	return &Manager{
		client:   client,
		staging:  staging,
		maxPages: maxPages,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Execute downloads each task's chain in order, one request at a time.
func (m *Manager) Execute(ctx context.Context, tasks []Task) (*BatchResult, error) {
	result := &BatchResult{Total: len(tasks)}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r := m.processTask(ctx, task)
		result.Rows += r.Rows
		result.Dropped += r.Dropped
		if r.Truncated {
			result.Truncated++
		}

		switch {
		case r.Skipped:
			result.Skipped++
		case r.NotFound:
			result.NotFound++
		case r.Success:
			result.Success++
		default:
			result.Failed++
			if r.Error != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", r.Task, r.Error))
			}
		}
	}

	return result, nil
}

func (m *Manager) processTask(ctx context.Context, task Task) TaskResult {
	result := TaskResult{Task: task}

	outputPath := task.OutputPath(m.staging.FinalDir())

	// Check if file exists (resume)
	if _, err := os.Stat(outputPath); err == nil {
		m.logger.Debug("skipping existing file", zap.String("task", task.String()))
		result.Skipped = true
		result.Success = true
		return result
	}

	m.logger.Info("downloading", zap.String("task", task.String()))

	records, err := m.fetchChain(ctx, task, &result)
	if err != nil {
		result.Error = err
		return result
	}
	if len(records) == 0 {
		m.logger.Warn("no usable quotes", zap.String("task", task.String()), zap.Int("dropped", result.Dropped))
		result.NotFound = true
		return result
	}

	stagingPath := task.OutputPath(m.staging.StagingRoot())
	size, err := m.staging.WriteToStaging(stagingPath, func(w io.Writer) error {
		return data.WriteRecords(w, records)
	})
	if err != nil {
		result.Error = err
		return result
	}

	result.Success = true
	result.BytesSize = size
	m.logger.Info("downloaded",
		zap.String("task", task.String()),
		zap.Int("pages", result.Pages),
		zap.Int("rows", result.Rows),
		zap.Int("dropped", result.Dropped),
		zap.Int64("bytes", size),
	)

	return result
}

// fetchChain walks pages from 1 until the source runs dry or maxPages is
// reached. Rows that cannot be priced are dropped; a contract seen on an
// earlier page is ignored.
func (m *Manager) fetchChain(ctx context.Context, task Task, result *TaskResult) ([]*data.QuoteRecord, error) {
	var records []*data.QuoteRecord
	seen := make(map[string]bool)
	lastPageFull := false

	for page := 1; page <= m.maxPages; page++ {
		rows, err := m.client.FetchPage(ctx, task.Instrument, task.Market, page)
		if errors.Is(err, api.ErrNoData) {
			lastPageFull = false
			break
		}
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		result.Pages++
		lastPageFull = m.pageSize > 0 && len(rows) >= m.pageSize

		for _, row := range rows {
			if seen[row.Code] {
				continue
			}
			seen[row.Code] = true

			rec, err := row.Record()
			if err != nil {
				m.logger.Debug("dropping row", zap.String("task", task.String()), zap.Error(err))
				result.Dropped++
				continue
			}
			records = append(records, &rec)
		}
	}

	if lastPageFull && result.Pages == m.maxPages {
		result.Truncated = true
		m.logger.Warn("chain cut off at max pages, raise source.max_pages",
			zap.String("task", task.String()),
			zap.Int("max_pages", m.maxPages),
			zap.Int("page_size", m.pageSize),
		)
	}

	result.Rows = len(records)
	return records, nil
}
