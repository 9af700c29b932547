package helpers

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the ISO date format stored for every date column
const DateLayout = "2006-01-02"

// PeriodLayout is the default charge period label
const PeriodLayout = "2006-01"

// AmountTolerance is the smallest difference treated as a real amount difference
const AmountTolerance = 0.005

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// Today returns the current local date in DateLayout
func Today() string {
	return time.Now().Format(DateLayout)
}

// CurrentPeriod returns the current month label in PeriodLayout
func CurrentPeriod() string {
	return time.Now().Format(PeriodLayout)
}

// IsValidDate reports whether s is a calendar date in DateLayout
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// RoundAmount rounds to 2 decimal places, half away from zero
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

// AmountsEqual compares money values with AmountTolerance
func AmountsEqual(a, b float64) bool {
	return math.Abs(a-b) < AmountTolerance
}
