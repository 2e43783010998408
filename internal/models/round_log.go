package models

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

var ErrShortRow = errors.New("round row has too few fields")

// HistoryFileName is the cumulative, non-partitioned log receiving every
// record ever appended, for queries that span day boundaries.
const HistoryFileName = "history.csv"

// RoundLog is the append-only, date-partitioned store of rounds. One CSV
// file per calendar day, header row on creation, records immutable once
// written. A single writer is assumed; reads open independent handles and
// may run concurrently with the writer because every record lands in one
// Write call.
type RoundLog struct {
	dataDir     string
	historyFile bool
}

func NewRoundLog(dataDir string, historyFile bool) (*RoundLog, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &RoundLog{dataDir: dataDir, historyFile: historyFile}, nil
}

// CurrentPartitionKey returns today's date key. Appends and "latest"
// queries always target this partition; immediately after midnight the new
// partition is empty and queries report no data rather than yesterday's
// tail.
func (l *RoundLog) CurrentPartitionKey() string {
	return time.Now().Format(PartitionKeyLayout)
}

// PartitionPath returns the file backing one day partition.
func (l *RoundLog) PartitionPath(key string) string {
	return filepath.Join(l.dataDir, "rounds_"+key+".csv")
}

// Append writes the record as the next entry of the partition matching its
// observation date, creating the partition with a header row when needed.
// The cumulative history file, when enabled, receives the same row.
func (l *RoundLog) Append(r *Round) error {
	if err := l.appendTo(l.PartitionPath(r.PartitionKey()), r); err != nil {
		return err
	}
	if l.historyFile {
		if err := l.appendTo(filepath.Join(l.dataDir, HistoryFileName), r); err != nil {
			return err
		}
	}
	return nil
}

func (l *RoundLog) appendTo(path string, r *Round) error {
	fresh := false
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		fresh = true
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if fresh {
		if err := w.Write(RoundHeader()); err != nil {
			return err
		}
	}
	if err := w.Write(r.CSVRow()); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open partition %s: %w", path, err)
	}
	defer file.Close()

	// Header and row go out in a single write so a concurrent reader never
	// sees a torn record.
	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append to partition %s: %w", path, err)
	}
	return nil
}

// ReadAll returns every record of a partition in append order. A missing
// partition yields an empty slice, not an error.
func (l *RoundLog) ReadAll(key string) ([]*Round, error) {
	return l.readFile(l.PartitionPath(key))
}

// ReadLast returns the last n records of a partition in append order.
// Fewer than n records returns all of them; an empty or missing partition
// returns an empty slice.
func (l *RoundLog) ReadLast(key string, n int) ([]*Round, error) {
	rounds, err := l.ReadAll(key)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if len(rounds) > n {
		rounds = rounds[len(rounds)-n:]
	}
	return rounds, nil
}

func (l *RoundLog) readFile(path string) ([]*Round, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Round{}, nil
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rounds := make([]*Round, 0)
	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		r, err := RoundFromCSVRow(row)
		if err != nil {
			// Torn or foreign row, skip rather than fail the read.
			continue
		}
		rounds = append(rounds, r)
	}
	return rounds, nil
}
