package event

import (
	"errors"
	"fmt"
	"time"
)

// Descriptor is the static description of the event tickets are issued for.
// It is loaded once at startup and never mutated.
type Descriptor struct {
	Title          string `validate:"required"`
	Venue          string `validate:"required"`
	DisplayDate    string `validate:"required"`
	DisplayTime    string `validate:"required"`
	Start          Start
	Duration       Duration
	OrganizerName  string `validate:"required"`
	OrganizerEmail string `validate:"required,email"`
	LogoURL        string `validate:"omitempty,url"`
}

// Start is a naive local wall-clock time, no timezone attached.
type Start struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

type Duration struct {
	Hours   int
	Minutes int
}

var ErrInvalidSchedule = errors.New("invalid event schedule")

// Time returns the start as a time in UTC purely as a carrier for the wall
// clock fields; callers must not interpret the location.
func (s Start) Time() (time.Time, error) {
	if s.Month < 1 || s.Month > 12 || s.Day < 1 || s.Day > 31 ||
		s.Hour < 0 || s.Hour > 23 || s.Minute < 0 || s.Minute > 59 {
		return time.Time{}, fmt.Errorf("%w: start %+v", ErrInvalidSchedule, s)
	}

	t := time.Date(s.Year, time.Month(s.Month), s.Day, s.Hour, s.Minute, 0, 0, time.UTC)

	// time.Date normalises 31 Feb into March; reject instead.
	if t.Day() != s.Day {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for month %d", ErrInvalidSchedule, s.Day, s.Month)
	}
	return t, nil
}

func (d Duration) Value() time.Duration {
	return time.Duration(d.Hours)*time.Hour + time.Duration(d.Minutes)*time.Minute
}

// WithTitle returns a copy using title when it is non-empty.
func (d Descriptor) WithTitle(title string) Descriptor {
	if title != "" {
		d.Title = title
	}
	return d
}
