package reporter

import (
	"sync"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/token"
)

// Memory collects reported errors as records in the order they arrive.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

// NewMemory returns an empty memory reporter.
func NewMemory() *Memory {
	return &Memory{}
}

// ReportError appends the error to the reporter.
func (m *Memory) ReportError(urlData *css.URLData, pos token.Pos, err parser.ContextualError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, NewRecord(urlData, pos, err))
}

// Records returns a copy of the collected records.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.records) == 0 {
		return nil
	}
	return append([]Record(nil), m.records...)
}

// Len returns the number of collected records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Reset discards all collected records.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}
