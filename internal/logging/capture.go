package logging

import (
	"strings"
	"sync"
)

// CaptureSink is an in-memory log target. Every record written anywhere in
// the process during a session lands here and is read back each render. The
// sink accumulates for the whole session; with maxLines zero it never drops
// anything, otherwise only the most recent maxLines lines are kept.
//
// Bubble Tea runs commands on their own goroutines, so writes and reads can
// overlap and the sink locks around the buffer.
type CaptureSink struct {
	mu       sync.Mutex
	lines    []string
	partial  strings.Builder
	maxLines int
}

func NewCaptureSink(maxLines int) *CaptureSink {
	if maxLines < 0 {
		maxLines = 0
	}
	return &CaptureSink{maxLines: maxLines}
}

// Write implements io.Writer for logrus. Records are split on newlines;
// an unterminated tail is held back until its newline arrives so a line is
// never displayed half-written.
func (s *CaptureSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.partial.Write(p)
	for {
		text := s.partial.String()
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			break
		}
		s.lines = append(s.lines, text[:idx])
		s.partial.Reset()
		s.partial.WriteString(text[idx+1:])
	}
	if s.maxLines > 0 && len(s.lines) > s.maxLines {
		s.lines = append([]string(nil), s.lines[len(s.lines)-s.maxLines:]...)
	}
	return len(p), nil
}

// Lines returns every captured line in emission order.
func (s *CaptureSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *CaptureSink) String() string {
	return strings.Join(s.Lines(), "\n")
}

func (s *CaptureSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
