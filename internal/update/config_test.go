package update

import (
	"testing"

	"habitd/internal/model"
)

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("HABITD_DB_PATH", "/tmp/habits.db")
	t.Setenv("HABITD_WEEK_START", "sunday")
	t.Setenv("HABITD_DEFAULT_FILTER", "today")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DBPath != "/tmp/habits.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
	if cfg.WeekStart != model.Sunday {
		t.Fatalf("unexpected week start: %v", cfg.WeekStart)
	}
	if cfg.DefaultFilter != model.FilterToday {
		t.Fatalf("unexpected filter: %q", cfg.DefaultFilter)
	}
}

func TestRuntimeConfigFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("HABITD_WEEK_START", "someday")
	t.Setenv("HABITD_DEFAULT_FILTER", "overdue")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.WeekStart != model.Monday {
		t.Fatalf("expected default week start, got %v", cfg.WeekStart)
	}
	if cfg.DefaultFilter != model.FilterAll {
		t.Fatalf("expected default filter, got %q", cfg.DefaultFilter)
	}
}
