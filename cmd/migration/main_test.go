package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRun_UnknownCommandIsUsage(t *testing.T) {
	if err := run(nil); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run([]string{"sideways"}); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestDatabaseURL(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		t.Setenv("DB_URL", "")
		if _, err := databaseURL(); err == nil {
			t.Fatalf("expected error without DB_URL")
		}
	})

	t.Run("adds prepared binary flag by default", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://u:p@localhost:5432/lol_companion?sslmode=disable")
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		got, err := databaseURL()
		if err != nil {
			t.Fatalf("database url: %v", err)
		}
		if !strings.Contains(got, "disable_prepared_binary_result=yes") {
			t.Fatalf("expected flag in url, got %q", got)
		}
	})

	t.Run("toggle off", func(t *testing.T) {
		in := "postgres://u:p@localhost:5432/lol_companion?sslmode=disable"
		t.Setenv("DB_URL", in)
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")
		got, err := databaseURL()
		if err != nil || got != in {
			t.Fatalf("expected url unchanged, got %q (%v)", got, err)
		}
	})
}
