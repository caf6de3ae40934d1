package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const maxLineSize = 1024 * 1024

var ErrMissingEventID = errors.New("missing event_id")

// Request is one JSONL input line. The expectation fields are only used by
// validation mode.
type Request struct {
	EventID          string `json:"event_id"`
	SessionID        string `json:"session_id,omitempty"`
	Specification    string `json:"specification"`
	ExpectedInScope  *bool  `json:"expected_in_scope,omitempty"`
	ExpectedCategory string `json:"expected_category,omitempty"`
}

type InputRecord struct {
	LineNumber int
	Request    Request
	Error      error
}

type Reader struct {
	r      io.Reader
	logger *zerolog.Logger
}

func NewReader(r io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{r: r, logger: logger}
}

// ReadAll streams records until EOF or ctx is cancelled. Blank lines are
// skipped but still counted.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	ch := make(chan InputRecord)

	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(r.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
			} else if record.Request.EventID == "" {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, ErrMissingEventID)
			}

			select {
			case ch <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Int("line", lineNumber).Msg("Failed to read input")
			select {
			case ch <- InputRecord{LineNumber: lineNumber + 1, Error: err}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}
