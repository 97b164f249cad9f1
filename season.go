package fantaleague

import "time"

// SeasonProvider tells which season is being played. A season is identified by
// the calendar year it starts in.
type SeasonProvider interface {
	CurrentSeason() int
}

// FixedSeason is a SeasonProvider that always returns the same season.
type FixedSeason int

func (s FixedSeason) CurrentSeason() int { return int(s) }

// Clock returns the current time. It stamps signings and dates transactions.
type Clock func() time.Time

// ClockSeason derives the season from the clock's calendar year.
type ClockSeason Clock

func (s ClockSeason) CurrentSeason() int { return Clock(s)().Year() }

// FixedClock returns a Clock stuck at t.
func FixedClock(t time.Time) Clock { return func() time.Time { return t } }
