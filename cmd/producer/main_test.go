package main

import (
	"strings"
	"testing"
)

func TestReadSpecification(t *testing.T) {
	got, err := readSpecification("inline text", strings.NewReader("ignored"))
	if err != nil || got != "inline text" {
		t.Errorf("Expected inline argument, got %q (%v)", got, err)
	}

	got, err = readSpecification("-", strings.NewReader("  解約ボタンを隠す\n"))
	if err != nil || got != "解約ボタンを隠す" {
		t.Errorf("Expected trimmed stdin text, got %q (%v)", got, err)
	}

	if _, err := readSpecification("-", strings.NewReader("   \n")); err == nil {
		t.Error("Expected error for empty stdin")
	}
}
