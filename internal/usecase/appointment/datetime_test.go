package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
)

func TestParseSlot(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	got, err := parseSlot("2030-03-11", "10:30", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2030, 3, 11, 10, 30, 0, 0, loc), got)

	// seconds are accepted and truncated
	got, err = parseSlot("2030-03-11", "10:30:45", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2030, 3, 11, 10, 30, 0, 0, loc), got)

	_, err = parseSlot("11/03/2030", "10:30", loc)
	require.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = parseSlot("2030-03-11", "10h30", loc)
	require.True(t, httperr.IsBusiness(err, "invalid_time"))

	_, err = parseSlot("2030-03-11", "25:00", loc)
	require.True(t, httperr.IsBusiness(err, "invalid_time"))
}
