package svix

import (
	"math"
	"testing"
	"time"
)

type weekdayCalendar struct{}

func (weekdayCalendar) IsBusinessDay(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

func TestActualDayCounter(t *testing.T) {
	valuation := day(2025, 8, 4)
	expiry := day(2025, 8, 27)

	act365, err := NewDayCounter("act/365", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := act365.YearFraction(valuation, expiry); math.Abs(got-23.0/365) > 1e-15 {
		t.Errorf("ACT/365: expected %v, got %v", 23.0/365, got)
	}

	act36525, err := NewDayCounter(DayCountAct36525, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := act36525.YearFraction(valuation, expiry); math.Abs(got-23.0/365.25) > 1e-15 {
		t.Errorf("ACT/365.25: expected %v, got %v", 23.0/365.25, got)
	}
	if act36525.Name() != DayCountAct36525 {
		t.Errorf("unexpected name %s", act36525.Name())
	}

	// intraday timestamps do not change the day count
	if got := act365.YearFraction(valuation.Add(15*time.Hour), expiry); math.Abs(got-23.0/365) > 1e-15 {
		t.Errorf("expected whole days, got %v", got)
	}
}

func TestBusinessDayCounter(t *testing.T) {
	dc := BusinessDayCounter{Calendar: weekdayCalendar{}}

	// Mon 2025-08-04 to Mon 2025-08-11 spans five trading days
	if got := dc.YearFraction(day(2025, 8, 4), day(2025, 8, 11)); math.Abs(got-5.0/252) > 1e-15 {
		t.Errorf("expected %v, got %v", 5.0/252, got)
	}
	if got := dc.YearFraction(day(2025, 8, 4), day(2025, 8, 4)); got != 0 {
		t.Errorf("expected 0 on expiry day, got %v", got)
	}
	if got := dc.YearFraction(day(2025, 8, 4), day(2025, 8, 1)); got >= 0 {
		t.Errorf("expected negative fraction for past expiry, got %v", got)
	}
}

func TestBusinessDayCounter_ExchangeHolidays(t *testing.T) {
	tests := []struct {
		name      string
		calendar  string
		valuation time.Time
		expiry    time.Time
		want      int
	}{
		// Independence Day, then a weekend
		{"XNYS July 4th", CalendarNewYork, day(2025, 7, 3), day(2025, 7, 7), 1},
		// National Day closes Oct 1-7
		{"XSHG Golden Week", CalendarShanghai, day(2025, 9, 30), day(2025, 10, 8), 1},
		{"XSHE Golden Week", CalendarShenzhen, day(2025, 9, 30), day(2025, 10, 8), 1},
		{"default calendar is Shanghai", "", day(2025, 9, 26), day(2025, 10, 9), 4},
		// the Shanghai holiday does not close New York
		{"XNYS through Golden Week", CalendarNewYork, day(2025, 9, 30), day(2025, 10, 8), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc, err := NewDayCounter(DayCountBusiness, tt.calendar)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := float64(tt.want) / 252
			if got := dc.YearFraction(tt.valuation, tt.expiry); math.Abs(got-want) > 1e-15 {
				t.Errorf("expected %d trading days (%v), got %v", tt.want, want, got)
			}
		})
	}
}

func TestExchangeCalendar(t *testing.T) {
	for _, mic := range []string{"xshg", CalendarShenzhen, CalendarNewYork} {
		cal, err := ExchangeCalendar(mic)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", mic, err)
		}
		if cal.Loc == nil {
			t.Errorf("%s: calendar has no location", mic)
		}
	}
	if _, err := ExchangeCalendar("XLON"); err == nil {
		t.Error("expected error for unsupported calendar")
	}
}

func TestNewDayCounter_Unknown(t *testing.T) {
	if _, err := NewDayCounter("30/360", ""); err == nil {
		t.Error("expected error for unsupported convention")
	}
	if _, err := NewDayCounter(DayCountBusiness, "XXXX"); err == nil {
		t.Error("expected error for unsupported calendar")
	}
}

func TestGroupByExpiry(t *testing.T) {
	valuation := day(2025, 8, 4)
	late, early := day(2025, 9, 24), day(2025, 8, 27)
	quotes := []Quote{
		quote(4.0, Call, 0.1, late, 4.0),
		quote(4.0, Call, 0.1, early.Add(9*time.Hour), 4.0),
		quote(4.0, Put, 0.1, early, 4.0),
		quote(4.0, Put, 0.1, day(2025, 7, 23), 4.0),
	}

	groups, expired := GroupByExpiry(quotes, valuation, ActualDayCounter{Basis: 365})

	if expired != 1 {
		t.Errorf("expected 1 expired group, got %d", expired)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if !groups[0].Expiry.Equal(early) || len(groups[0].Quotes) != 2 {
		t.Errorf("unexpected first group: %s with %d quotes", groups[0].Expiry, len(groups[0].Quotes))
	}
	if !groups[1].Expiry.Equal(late) {
		t.Errorf("unexpected second group: %s", groups[1].Expiry)
	}
	if math.Abs(groups[0].T-23.0/365) > 1e-15 {
		t.Errorf("unexpected T %v", groups[0].T)
	}
}
