package appointment

import (
	"time"

	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
)

const dateLayout = "2006-01-02"

// parseSlot combines a YYYY-MM-DD date and an HH:MM[:SS] time into a local
// timestamp. Seconds are accepted and truncated to the minute.
func parseSlot(date, clock string, loc *time.Location) (time.Time, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}

	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, clock); err == nil {
			d, _ := time.ParseInLocation(dateLayout, date, loc)
			return time.Date(
				d.Year(), d.Month(), d.Day(),
				t.Hour(), t.Minute(), 0, 0,
				loc,
			), nil
		}
	}

	return time.Time{}, httperr.ErrBusiness("invalid_time")
}
