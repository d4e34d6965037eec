// Package calendar answers whether US equities trade on a given day, so
// scheduled tasks can sit out weekends and exchange holidays.
package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/us"
)

// NYSE models the New York Stock Exchange trading calendar: weekdays
// minus the exchange's observed holidays.
type NYSE struct {
	cal *cal.BusinessCalendar
}

// NewNYSE builds the NYSE calendar. Good Friday is an exchange holiday
// without being a federal one, so it comes from the common set.
func NewNYSE() *NYSE {
	c := cal.NewBusinessCalendar()
	c.Name = "NYSE"
	c.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		aa.GoodFriday,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	return &NYSE{cal: c}
}

// Open reports whether the exchange trades on the calendar day of t.
func (n *NYSE) Open(t time.Time) bool {
	return n.cal.IsWorkday(t)
}
