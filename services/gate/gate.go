// Package gate decides whether the storefront is open at a given instant.
// Evaluation is pure: it takes a configuration snapshot and a clock reading
// and returns ALLOW or DENY, nothing else. Loading the snapshot and
// rendering the denial belong to the middleware layer.
package gate

import (
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/models"
)

const dateLayout = "2006-01-02"

// Evaluate reports whether service is available at now under cfg. A nil
// cfg means the deployment never configured availability and the shop
// stays open.
func Evaluate(cfg *models.SiteConfig, now time.Time) bool {
	if cfg == nil {
		return true
	}

	minute := now.Hour()*60 + now.Minute()
	weekday := now.Weekday()

	if weekday == time.Saturday || weekday == time.Sunday {
		if !inWeekendService(cfg.WeekendDays, weekday, minute) {
			return false
		}
	} else {
		if !inAnyWindow(cfg.Hours, minute) {
			return false
		}
	}

	today := now.Format(dateLayout)
	for _, d := range cfg.DayBlocks {
		if d == today {
			return false
		}
	}
	for _, v := range cfg.VacationBlocks {
		if v.Contains(today) {
			return false
		}
	}
	return true
}

// inWeekendService finds the row for the given weekend day. No row, or a
// row with zero windows, keeps the shop closed for that day.
func inWeekendService(days []models.WeekendDay, weekday time.Weekday, minute int) bool {
	for _, wd := range days {
		if wd.DayOfWeek == weekday {
			return inAnyWindow(wd.Hours, minute)
		}
	}
	return false
}

func inAnyWindow(windows []models.ServiceWindow, minute int) bool {
	for _, w := range windows {
		if w.Contains(minute) {
			return true
		}
	}
	return false
}
