package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"haul-and-hoard/server/logging"
)

// ArchiveSink writes zstd-compressed NDJSON event archives, rotating to a
// new file once per UTC day. Archives are append-only; a restart within the
// same day appends a fresh zstd frame to the existing file.
type ArchiveSink struct {
	dir    string
	prefix string

	mu     sync.Mutex
	curDay string
	file   *os.File
	enc    *zstd.Encoder
	writer *bufio.Writer
}

// NewArchiveSink builds an archive sink rooted at dir. Files are named
// <prefix>-<yyyy-mm-dd>.ndjson.zst.
func NewArchiveSink(dir, prefix string) *ArchiveSink {
	if prefix == "" {
		prefix = "events"
	}
	return &ArchiveSink{dir: dir, prefix: prefix}
}

// Write satisfies logging.Sink.
func (s *ArchiveSink) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := time.Now().UTC().Format("2006-01-02")
	if day != s.curDay {
		if err := s.rotateLocked(day); err != nil {
			return err
		}
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.WriteByte('\n')
}

// Close flushes and closes the current archive.
func (s *ArchiveSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *ArchiveSink) rotateLocked(day string) error {
	if err := s.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.ndjson.zst", s.prefix, day))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		file.Close()
		return err
	}
	s.file = file
	s.enc = enc
	s.writer = bufio.NewWriterSize(enc, 64*1024)
	s.curDay = day
	return nil
}

func (s *ArchiveSink) closeLocked() error {
	var firstErr error
	if s.writer != nil {
		if err := s.writer.Flush(); err != nil {
			firstErr = err
		}
		s.writer = nil
	}
	if s.enc != nil {
		if err := s.enc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.enc = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.file = nil
	}
	s.curDay = ""
	return firstErr
}
