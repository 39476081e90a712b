package download

import (
	"fmt"

	"github.com/dgnsrekt/etf-svix/internal/data"
)

type Task struct {
	Instrument string
	Market     int
	Date       string
}

func (t Task) OutputPath(baseDir string) string {
	return data.ChainPath(baseDir, t.Date, t.Instrument)
}

func (t Task) String() string {
	return fmt.Sprintf("%s/%s", t.Date, t.Instrument)
}

type TaskResult struct {
	Task      Task
	Success   bool
	Skipped   bool
	NotFound  bool
	Pages     int
	Rows      int
	Dropped   int
	Truncated bool
	BytesSize int64
	Error     error
}
