package countdown

import (
	"fmt"
	"time"
)

const (
	millisPerSecond = int64(1000)
	millisPerMinute = 60 * millisPerSecond
	millisPerHour   = 60 * millisPerMinute
	millisPerDay    = 24 * millisPerHour
	// Fixed approximations; calendar month lengths and leap years are ignored.
	millisPerMonth = 30 * millisPerDay
	millisPerYear  = 365 * millisPerDay
)

// Breakdown is the remaining time split into display units.
// An expired breakdown always carries zero in every unit.
type Breakdown struct {
	Years   int  `json:"years"`
	Months  int  `json:"months"`
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

// ExpiredBreakdown returns the terminal zero breakdown.
func ExpiredBreakdown() Breakdown {
	return Breakdown{Expired: true}
}

// Compute returns the remaining time between now and target.
//
// The difference is split with fixed divisors: a year is 365 days and a month
// is 30 days, each unit taken from the remainder of the previous divisor.
// Months therefore range over [0,12] rather than [0,11]. Once target is not
// after now the result is expired for every later now as well.
func Compute(target, now time.Time) Breakdown {
	difference := target.UnixMilli() - now.UnixMilli()
	if difference <= 0 {
		return ExpiredBreakdown()
	}

	return Breakdown{
		Years:   int(difference / millisPerYear),
		Months:  int((difference % millisPerYear) / millisPerMonth),
		Days:    int((difference % millisPerMonth) / millisPerDay),
		Hours:   int((difference % millisPerDay) / millisPerHour),
		Minutes: int((difference % millisPerHour) / millisPerMinute),
		Seconds: int((difference % millisPerMinute) / millisPerSecond),
	}
}

// Total folds the breakdown back into a duration using the same divisors as
// Compute. Because months and days overlap under those divisors the value is
// an approximation and only useful for ordering and status text.
func (breakdown Breakdown) Total() time.Duration {
	if breakdown.Expired {
		return 0
	}
	millis := int64(breakdown.Years)*millisPerYear +
		int64(breakdown.Months)*millisPerMonth +
		int64(breakdown.Days)*millisPerDay +
		int64(breakdown.Hours)*millisPerHour +
		int64(breakdown.Minutes)*millisPerMinute +
		int64(breakdown.Seconds)*millisPerSecond
	return time.Duration(millis) * time.Millisecond
}

// Validate reports whether the breakdown holds the expiry invariant and
// carries no negative units.
func (breakdown Breakdown) Validate() error {
	units := []int{breakdown.Years, breakdown.Months, breakdown.Days, breakdown.Hours, breakdown.Minutes, breakdown.Seconds}
	for _, unit := range units {
		if unit < 0 {
			return fmt.Errorf("%w: negative unit in %s", ErrInvalidBreakdown, breakdown)
		}
		if breakdown.Expired && unit != 0 {
			return fmt.Errorf("%w: expired with remaining time %s", ErrInvalidBreakdown, breakdown)
		}
	}
	return nil
}

// String renders a compact status such as "1y 2mo 3d 04:05:06".
func (breakdown Breakdown) String() string {
	if breakdown.Expired {
		return "expired"
	}
	clock := fmt.Sprintf("%02d:%02d:%02d", breakdown.Hours, breakdown.Minutes, breakdown.Seconds)
	switch {
	case breakdown.Years > 0:
		return fmt.Sprintf("%dy %dmo %dd %s", breakdown.Years, breakdown.Months, breakdown.Days, clock)
	case breakdown.Months > 0:
		return fmt.Sprintf("%dmo %dd %s", breakdown.Months, breakdown.Days, clock)
	case breakdown.Days > 0:
		return fmt.Sprintf("%dd %s", breakdown.Days, clock)
	default:
		return clock
	}
}
