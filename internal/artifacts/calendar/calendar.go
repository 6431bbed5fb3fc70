package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/geocoder89/ticketdesk/internal/domain/event"
)

// floatingLayout is an iCalendar DATE-TIME without a zone suffix, read by
// clients as local wall-clock time.
const floatingLayout = "20060102T150405"

const productID = "-//ticketdesk//event ticket//ID"

var ErrInvalidInvite = errors.New("invalid calendar invite")

type Encoder struct {
	uidDomain string
}

func NewEncoder(uidDomain string) *Encoder {
	if uidDomain == "" {
		uidDomain = "ticketdesk.local"
	}
	return &Encoder{uidDomain: uidDomain}
}

// Encode builds a METHOD:REQUEST calendar with a single confirmed event.
func (e *Encoder) Encode(ev event.Descriptor, code, attendeeName string, now time.Time) ([]byte, error) {
	start, err := ev.Start.Time()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInvite, err)
	}

	dur := ev.Duration.Value()
	if dur <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInvite)
	}
	if strings.TrimSpace(ev.Title) == "" {
		return nil, fmt.Errorf("%w: title is empty", ErrInvalidInvite)
	}
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: ticket code is empty", ErrInvalidInvite)
	}

	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodRequest)

	vevent := cal.AddEvent(strings.ToLower(code) + "@" + e.uidDomain)
	vevent.SetDtStampTime(now.UTC())
	vevent.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingLayout))
	vevent.SetProperty(ics.ComponentPropertyDtEnd, start.Add(dur).Format(floatingLayout))
	vevent.SetSummary(ev.Title)
	vevent.SetLocation(ev.Venue)
	vevent.SetDescription(fmt.Sprintf(
		"Halo %s, ini tiket Anda untuk %s. Kode tiket: %s. Lokasi: %s.",
		attendeeName, ev.Title, code, ev.Venue,
	))
	vevent.SetStatus(ics.ObjectStatusConfirmed)

	if ev.OrganizerEmail != "" {
		vevent.SetOrganizer("mailto:"+ev.OrganizerEmail, ics.WithCN(ev.OrganizerName))
	}

	return []byte(cal.Serialize()), nil
}
