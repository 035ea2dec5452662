// Package logging is the ambient structured event log: one JSON record
// per stitcher phase boundary, per file merged by repository.Indexer, and
// per surfaced error, written asynchronously so a slow disk never stalls a
// stitching run.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// EventType discriminates Entry.
type EventType string

const (
	// EventPhaseBoundary is recorded once per stitcher phase, after that
	// phase's frontier has been fully processed.
	EventPhaseBoundary EventType = "phase_boundary"
	// EventInsertBatch is recorded once per file a repository.Indexer run
	// merges into its graph.
	EventInsertBatch EventType = "insert_batch"
	// EventError is recorded whenever a caller surfaces an error through
	// the logger instead of just returning it.
	EventError EventType = "error"
)

// Entry is one JSONL record. Fields irrelevant to a given EventType are
// left at their zero value and omitted from the encoded form.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Phase     int       `json:"phase,omitempty"`
	Queued    int       `json:"queued,omitempty"`
	Processed int       `json:"processed,omitempty"`
	File      string    `json:"file,omitempty"`
	Count     int       `json:"count,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Logger writes Entry records to a JSONL file through a buffered channel,
// draining them on a background goroutine; a full buffer drops the entry
// rather than block the caller.
type Logger struct {
	file    *os.File
	encoder *json.Encoder
	entries chan Entry
	done    chan struct{}
	dropped int
}

// Open creates (or truncates) path and returns a Logger writing to it.
// The background drain goroutine starts immediately; call Close to flush
// and release the file.
func Open(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	l := &Logger{
		file:    file,
		encoder: json.NewEncoder(file),
		entries: make(chan Entry, 1000),
		done:    make(chan struct{}),
	}
	go l.drain()
	return l, nil
}

func (l *Logger) drain() {
	for e := range l.entries {
		if err := l.encoder.Encode(e); err != nil {
			fmt.Fprintf(os.Stderr, "logging: write entry: %v\n", err)
		}
	}
	close(l.done)
}

func (l *Logger) record(e Entry) {
	e.Timestamp = time.Now()
	select {
	case l.entries <- e:
	default:
		l.dropped++
	}
}

// PhaseBoundary records one stitcher phase's queue/processed counts.
func (l *Logger) PhaseBoundary(phase, queued, processed int) {
	l.record(Entry{Type: EventPhaseBoundary, Phase: phase, Queued: queued, Processed: processed})
}

// InsertBatch records a batch of count items for file; repository.Indexer
// passes the node count of the file's graph.
func (l *Logger) InsertBatch(file string, count int) {
	l.record(Entry{Type: EventInsertBatch, File: file, Count: count})
}

// Error records err against an optional file context.
func (l *Logger) Error(file string, err error) {
	l.record(Entry{Type: EventError, File: file, Message: err.Error()})
}

// Dropped reports how many entries were discarded because the buffer was
// full when recorded.
func (l *Logger) Dropped() int { return l.dropped }

// Close drains remaining entries and closes the underlying file.
func (l *Logger) Close() error {
	close(l.entries)
	<-l.done
	if l.dropped > 0 {
		fmt.Fprintf(os.Stderr, "logging: %d entries dropped (buffer full)\n", l.dropped)
	}
	return l.file.Close()
}
