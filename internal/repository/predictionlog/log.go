// Package predictionlog persists receipt predictions as an append-only
// newline-delimited JSON file. Records are never mutated or deleted.
package predictionlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ai-helpdesk-be/internal/entity"
)

type Log struct {
	path string
	mu   sync.Mutex
}

func NewLog(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	return &Log{path: path}, nil
}

// Append writes one record as a single JSON line. Appends are serialized so
// concurrent extractions never interleave lines.
func (l *Log) Append(record entity.ReceiptRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening predictions log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending prediction: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. Lines that fail to parse
// are skipped; an append-only log accumulates whatever was once valid.
func (l *Log) Recent(limit int) ([]entity.ReceiptRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entity.ReceiptRecord{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []entity.ReceiptRecord
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		var rec entity.ReceiptRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err == nil {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Newest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
