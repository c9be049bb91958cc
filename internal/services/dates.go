package services

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
)

const dateLayout = "2006-01-02"

// calendarDay truncates t to midnight UTC of its UTC calendar day.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseOptionalDate reads a YYYY-MM-DD value. Blank input yields nil.
func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("date %q must be YYYY-MM-DD: %w", raw, apperrors.ErrInvalidArgument)
	}
	return &t, nil
}
