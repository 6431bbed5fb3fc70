package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/geocoder89/ticketdesk/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptor() event.Descriptor {
	return event.Descriptor{
		Title:          "Workshop Go",
		Venue:          "Aula Utama",
		Start:          event.Start{Year: 2026, Month: 3, Day: 8, Hour: 15, Minute: 0},
		Duration:       event.Duration{Hours: 3},
		OrganizerName:  "Panitia Event",
		OrganizerEmail: "panitia@example.com",
	}
}

func parse(t *testing.T, payload []byte) *ics.VEvent {
	t.Helper()

	cal, err := ics.ParseCalendar(bytes.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	return cal.Events()[0]
}

func prop(ev *ics.VEvent, p ics.ComponentProperty) string {
	v := ev.GetProperty(p)
	if v == nil {
		return ""
	}
	return v.Value
}

func TestEncode_StartAndEnd(t *testing.T) {
	out, err := NewEncoder("").Encode(descriptor(), "TIX-ABC123", "Siti", time.Now())
	require.NoError(t, err)

	ev := parse(t, out)
	assert.Equal(t, "20260308T150000", prop(ev, ics.ComponentPropertyDtStart))
	assert.Equal(t, "20260308T180000", prop(ev, ics.ComponentPropertyDtEnd))

	end, err := time.ParseInLocation(floatingLayout, prop(ev, ics.ComponentPropertyDtEnd), time.Local)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-08T18:00", end.Format("2006-01-02T15:04"))
}

func TestEncode_Metadata(t *testing.T) {
	out, err := NewEncoder("tickets.example.com").Encode(descriptor(), "TIX-ABC123", "Siti", time.Now())
	require.NoError(t, err)

	ev := parse(t, out)
	assert.Equal(t, "tix-abc123@tickets.example.com", ev.Id())
	assert.Equal(t, "Workshop Go", prop(ev, ics.ComponentPropertySummary))
	assert.Equal(t, "Aula Utama", prop(ev, ics.ComponentPropertyLocation))
	assert.Equal(t, "CONFIRMED", prop(ev, ics.ComponentPropertyStatus))
	assert.Equal(t, "mailto:panitia@example.com", prop(ev, ics.ComponentPropertyOrganizer))

	desc := prop(ev, ics.ComponentPropertyDescription)
	assert.Contains(t, desc, "Siti")
	assert.Contains(t, desc, "TIX-ABC123")
	assert.Contains(t, desc, "Aula Utama")

	assert.True(t, strings.Contains(string(out), "METHOD:REQUEST"))
}

func TestEncode_Rejects(t *testing.T) {
	badStart := descriptor()
	badStart.Start.Month = 13

	noDuration := descriptor()
	noDuration.Duration = event.Duration{}

	noTitle := descriptor()
	noTitle.Title = " "

	for name, d := range map[string]event.Descriptor{
		"bad_start":   badStart,
		"no_duration": noDuration,
		"no_title":    noTitle,
	} {
		t.Run(name, func(t *testing.T) {
			out, err := NewEncoder("").Encode(d, "TIX-ABC123", "Siti", time.Now())
			assert.ErrorIs(t, err, ErrInvalidInvite)
			assert.Nil(t, out)
		})
	}
}
