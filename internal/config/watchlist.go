package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultWatchlistSchedule runs weekday mornings before the open.
const DefaultWatchlistSchedule = "30 8 * * 1-5"

// Watchlist is the set of tickers the watch scheduler re-researches on
// a cron schedule.
type Watchlist struct {
	Tickers  []string `yaml:"tickers"`
	Schedule string   `yaml:"schedule"`
	DaysBack int      `yaml:"days_back"`
	Period   string   `yaml:"period"`
}

// LoadWatchlist reads a YAML watchlist and fills unset fields with
// defaults. A watchlist without tickers is an error.
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading watchlist %s: %w", path, err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parsing watchlist %s: %w", path, err)
	}

	if len(wl.Tickers) == 0 {
		return nil, fmt.Errorf("watchlist %s lists no tickers", path)
	}
	if wl.Schedule == "" {
		wl.Schedule = DefaultWatchlistSchedule
	}
	if wl.DaysBack == 0 {
		wl.DaysBack = 7
	}
	if wl.Period == "" {
		wl.Period = "annual"
	}

	return &wl, nil
}
