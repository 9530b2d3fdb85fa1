package update

import (
	"os"
	"strings"

	"habitd/internal/model"
)

type RuntimeConfig struct {
	DBPath        string
	WeekStart     model.Weekday
	DefaultFilter model.FilterType
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:        "habitd.db",
		WeekStart:     model.Monday,
		DefaultFilter: model.FilterAll,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("HABITD_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvWeekday("HABITD_WEEK_START"); ok {
		cfg.WeekStart = v
	}
	if v, ok := getEnvFilter("HABITD_DEFAULT_FILTER"); ok {
		cfg.DefaultFilter = v
	}
	return cfg
}

func getEnvWeekday(name string) (model.Weekday, bool) {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	if raw == "" {
		return 0, false
	}
	days := map[string]model.Weekday{
		"monday": model.Monday, "mon": model.Monday, "1": model.Monday,
		"tuesday": model.Tuesday, "tue": model.Tuesday, "2": model.Tuesday,
		"wednesday": model.Wednesday, "wed": model.Wednesday, "3": model.Wednesday,
		"thursday": model.Thursday, "thu": model.Thursday, "4": model.Thursday,
		"friday": model.Friday, "fri": model.Friday, "5": model.Friday,
		"saturday": model.Saturday, "sat": model.Saturday, "6": model.Saturday,
		"sunday": model.Sunday, "sun": model.Sunday, "7": model.Sunday,
	}
	v, ok := days[raw]
	return v, ok
}

func getEnvFilter(name string) (model.FilterType, bool) {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	if raw == "" {
		return "", false
	}
	f := model.FilterType(raw)
	if !f.IsValid() {
		return "", false
	}
	return f, true
}
