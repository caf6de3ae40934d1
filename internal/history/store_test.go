package history

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/redis/go-redis/v9"
)

var runIntegration = flag.Bool("integration", false, "Run integration tests against a real Redis")

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore(nil, 0, 0)

	if store.maxEntries != DefaultMaxEntries {
		t.Errorf("Expected maxEntries=%d, got %d", DefaultMaxEntries, store.maxEntries)
	}
	if store.ttl != DefaultTTL {
		t.Errorf("Expected ttl=%s, got %s", DefaultTTL, store.ttl)
	}
}

func TestStore_EmptySessionID(t *testing.T) {
	store := NewStore(nil, 0, 0)
	ctx := context.Background()

	if err := store.Append(ctx, "", models.HistoryEntry{}); !errors.Is(err, ErrEmptySessionID) {
		t.Errorf("Append: expected ErrEmptySessionID, got %v", err)
	}
	if _, err := store.List(ctx, ""); !errors.Is(err, ErrEmptySessionID) {
		t.Errorf("List: expected ErrEmptySessionID, got %v", err)
	}
	if err := store.Clear(ctx, ""); !errors.Is(err, ErrEmptySessionID) {
		t.Errorf("Clear: expected ErrEmptySessionID, got %v", err)
	}
}

func TestDecodeEntries_SkipsInvalid(t *testing.T) {
	valid, _ := json.Marshal(models.HistoryEntry{RequestID: "r-1", Summary: "解約導線"})

	entries := decodeEntries([]string{"{broken", string(valid)})

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].RequestID != "r-1" {
		t.Errorf("Expected r-1, got %s", entries[0].RequestID)
	}
}

func TestStore_Integration(t *testing.T) {
	if !*runIntegration {
		t.Skip("Skipping integration test. Use -integration flag to run")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	store := NewStore(client, 3, time.Minute)
	session := fmt.Sprintf("test-%d", time.Now().UnixNano())
	defer store.Clear(ctx, session)

	for i := range 5 {
		entry := models.HistoryEntry{RequestID: fmt.Sprintf("r-%d", i)}
		if err := store.Append(ctx, session, entry); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := store.List(ctx, session)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected history capped at 3, got %d", len(entries))
	}
	if entries[0].RequestID != "r-4" {
		t.Errorf("Expected newest entry first, got %s", entries[0].RequestID)
	}

	if err := store.Clear(ctx, session); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	entries, _ = store.List(ctx, session)
	if len(entries) != 0 {
		t.Errorf("Expected empty history after Clear, got %d", len(entries))
	}
}
