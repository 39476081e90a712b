package svix

import (
	"fmt"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// Day count conventions accepted by NewDayCounter.
const (
	DayCountAct365   = "ACT/365"
	DayCountAct36525 = "ACT/365.25"
	DayCountBusiness = "BUS/252"
)

const (
	businessDaysYear  = 252.0
	hoursPerDay       = 24.0
	daysPerYear       = 365.0
	daysPerJulianYear = 365.25
)

// DayCounter converts a valuation/expiry pair into a year fraction.
type DayCounter interface {
	YearFraction(valuation, expiry time.Time) float64
	Name() string
}

// BusinessCalendar reports exchange trading days.
type BusinessCalendar interface {
	IsBusinessDay(t time.Time) bool
}

// ActualDayCounter counts calendar days over a fixed year basis.
type ActualDayCounter struct {
	Basis float64
}

func (a ActualDayCounter) YearFraction(valuation, expiry time.Time) float64 {
	return calendarDays(valuation, expiry) / a.Basis
}

func (a ActualDayCounter) Name() string {
	if a.Basis == daysPerJulianYear {
		return DayCountAct36525
	}
	return DayCountAct365
}

// BusinessDayCounter counts trading days in (valuation, expiry] over 252.
// Location is the exchange's time zone; nil means UTC.
type BusinessDayCounter struct {
	Calendar BusinessCalendar
	Location *time.Location
}

func (b BusinessDayCounter) YearFraction(valuation, expiry time.Time) float64 {
	start, end := truncateDay(valuation), truncateDay(expiry)
	if !end.After(start) {
		return calendarDays(start, end) / daysPerYear
	}
	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}
	n := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		// holidays are keyed on the exchange's local midnight
		y, m, dd := d.Date()
		if b.Calendar.IsBusinessDay(time.Date(y, m, dd, 12, 0, 0, 0, loc)) {
			n++
		}
	}
	return float64(n) / businessDaysYear
}

func (b BusinessDayCounter) Name() string {
	return DayCountBusiness
}

// NewDayCounter resolves a convention name. calendarName selects the exchange
// calendar for BUS/252 and is ignored otherwise.
func NewDayCounter(name, calendarName string) (DayCounter, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", DayCountAct365:
		return ActualDayCounter{Basis: daysPerYear}, nil
	case DayCountAct36525:
		return ActualDayCounter{Basis: daysPerJulianYear}, nil
	case DayCountBusiness:
		cal, err := ExchangeCalendar(calendarName)
		if err != nil {
			return nil, err
		}
		return BusinessDayCounter{Calendar: cal, Location: cal.Loc}, nil
	default:
		return nil, fmt.Errorf("unknown day count %q (valid: %s, %s, %s)",
			name, DayCountAct365, DayCountAct36525, DayCountBusiness)
	}
}

// Exchange calendars accepted by ExchangeCalendar.
const (
	CalendarShanghai = "XSHG"
	CalendarShenzhen = "XSHE"
	CalendarNewYork  = "XNYS"
)

// ExchangeCalendars lists the supported MICs, default first.
var ExchangeCalendars = []string{CalendarShanghai, CalendarShenzhen, CalendarNewYork}

// ExchangeCalendar returns the holiday calendar for an exchange MIC.
// An empty MIC selects Shanghai.
func ExchangeCalendar(mic string) (*calendar.Calendar, error) {
	switch strings.ToUpper(strings.TrimSpace(mic)) {
	case "", CalendarShanghai:
		return calendar.XSHG(), nil
	case CalendarShenzhen:
		return calendar.XSHE(), nil
	case CalendarNewYork:
		return calendar.XNYS(), nil
	default:
		return nil, fmt.Errorf("unsupported exchange calendar %q (valid: %s)", mic, strings.Join(ExchangeCalendars, ", "))
	}
}

func calendarDays(valuation, expiry time.Time) float64 {
	return truncateDay(expiry).Sub(truncateDay(valuation)).Hours() / hoursPerDay
}
