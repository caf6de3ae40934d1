package batch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestReader_InvalidFile(t *testing.T) {
	file := strings.NewReader("invalid file content")

	reader := NewReader(file, newTestLogger())
	ctx := context.Background()
	ch := reader.ReadAll(ctx)

	for record := range ch {
		if record.Error == nil {
			t.Errorf("expected parse error for invalid JSON, but got none")
		}
	}
}

func TestReader_ValidFile(t *testing.T) {
	inputFile := `{"event_id":"1","session_id":"s","specification":"解約ボタンを小さく表示する"}
  {"event_id":"2","specification":"GPLライセンスのライブラリを使いたい","expected_in_scope":false,"expected_category":"OSS License"}`

	file := strings.NewReader(inputFile)

	ctx := context.Background()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	var records []InputRecord
	for record := range ch {
		if record.Error != nil {
			t.Errorf("Error reading the assessment request record. Got: %s", record.Error)
		}
		records = append(records, record)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 assessment request messages. Got: %d", len(records))
	}
	if records[0].Request.SessionID != "s" {
		t.Errorf("Expected session s, got %q", records[0].Request.SessionID)
	}
	if records[1].Request.ExpectedInScope == nil || *records[1].Request.ExpectedInScope {
		t.Error("Expected expected_in_scope=false on second record")
	}
}

func TestReader_MissingEventID(t *testing.T) {
	reader := NewReader(strings.NewReader(`{"specification":"x"}`), newTestLogger())

	for record := range reader.ReadAll(context.Background()) {
		if !errors.Is(record.Error, ErrMissingEventID) {
			t.Errorf("Expected ErrMissingEventID, got %v", record.Error)
		}
	}
}

func TestReader_ContextCancellation(t *testing.T) {
	// Large input with many lines
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, `{"event_id":"1","specification":"test"}`)
	}
	file := strings.NewReader(strings.Join(lines, "\n"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	count := 0
	for range ch {
		count++
		if count == 5 {
			cancel() // Cancel after 5 records
			break
		}
	}

	// Should have stopped early
	if count >= 100 {
		t.Errorf("expected early cancellation, but read all records")
	}
}

func TestReader_LineNumbers(t *testing.T) {
	inputFile := `{"event_id":"1","specification":"test"}

{"invalid json}
{"event_id":"2","specification":"test2"}`

	file := strings.NewReader(inputFile)
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(context.Background())
	records := []InputRecord{}
	for record := range ch {
		records = append(records, record)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	// Check line numbers
	if records[0].LineNumber != 1 {
		t.Errorf("first record should be line 1, got %d", records[0].LineNumber)
	}
	if records[1].LineNumber != 3 || records[1].Error == nil {
		t.Errorf("error record should be line 3, got %d", records[1].LineNumber)
	}
	if records[2].LineNumber != 4 {
		t.Errorf("third record should be line 4, got %d", records[2].LineNumber)
	}
}
