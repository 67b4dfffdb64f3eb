package models

import (
	"errors"
	"time"
)

// ServiceWindow is a daily service interval in minutes from midnight.
// Both bounds are inclusive: a request at exactly StartMinute or EndMinute
// is in service.
type ServiceWindow struct {
	StartMinute int `bson:"startMinute" json:"startMinute"`
	EndMinute   int `bson:"endMinute" json:"endMinute"`
}

// Contains reports whether the given minute of day falls inside the window.
func (w ServiceWindow) Contains(minute int) bool {
	return minute >= w.StartMinute && minute <= w.EndMinute
}

// WeekendDay configures service windows for Saturday or Sunday. A weekend
// day with no windows keeps the shop closed for the whole day.
type WeekendDay struct {
	DayOfWeek time.Weekday    `bson:"dayOfWeek" json:"dayOfWeek"`
	Hours     []ServiceWindow `bson:"hours" json:"hours"`
}

// VacationRange is an inclusive [StartDate, EndDate] closure, dates in
// "2006-01-02" form. Overlapping ranges are allowed; any matching range
// blocks service.
type VacationRange struct {
	StartDate string `bson:"startDate" json:"startDate"`
	EndDate   string `bson:"endDate" json:"endDate"`
}

// Contains reports whether date (in "2006-01-02" form) falls in the range.
func (v VacationRange) Contains(date string) bool {
	return v.StartDate <= date && date <= v.EndDate
}

// SiteConfig is the per-deployment availability configuration. At most one
// document exists; its absence means the shop is always open.
type SiteConfig struct {
	ID             string          `bson:"id" json:"id"`
	Name           string          `bson:"name" json:"name"`
	Hours          []ServiceWindow `bson:"hours" json:"hours"`
	WeekendDays    []WeekendDay    `bson:"weekendDays" json:"weekendDays"`
	DayBlocks      []string        `bson:"dayBlocks" json:"dayBlocks"`
	VacationBlocks []VacationRange `bson:"vacationBlocks" json:"vacationBlocks"`
	UpdatedAt      time.Time       `bson:"updatedAt" json:"updatedAt"`
}

const dateLayout = "2006-01-02"

// Validate checks the configuration before it is persisted. Day blocks in
// the past are rejected relative to today; a block for today is allowed.
func (s *SiteConfig) Validate(today time.Time) error {
	for _, w := range s.Hours {
		if err := validateWindow(w); err != nil {
			return err
		}
	}
	seen := map[time.Weekday]bool{}
	for _, wd := range s.WeekendDays {
		if wd.DayOfWeek != time.Saturday && wd.DayOfWeek != time.Sunday {
			return errors.New("weekend day must be Saturday or Sunday")
		}
		if seen[wd.DayOfWeek] {
			return errors.New("duplicate weekend day")
		}
		seen[wd.DayOfWeek] = true
		for _, w := range wd.Hours {
			if err := validateWindow(w); err != nil {
				return err
			}
		}
	}
	todayStr := today.Format(dateLayout)
	for _, d := range s.DayBlocks {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return errors.New("day block is not a valid date")
		}
		if d < todayStr {
			return errors.New("day block cannot be in the past")
		}
	}
	for _, v := range s.VacationBlocks {
		if _, err := time.Parse(dateLayout, v.StartDate); err != nil {
			return errors.New("vacation start is not a valid date")
		}
		if _, err := time.Parse(dateLayout, v.EndDate); err != nil {
			return errors.New("vacation end is not a valid date")
		}
		if v.StartDate >= v.EndDate {
			return errors.New("vacation start must be before its end")
		}
	}
	return nil
}

func validateWindow(w ServiceWindow) error {
	if w.StartMinute < 0 || w.EndMinute > 24*60 {
		return errors.New("service window out of range")
	}
	if w.StartMinute >= w.EndMinute {
		return errors.New("service window start must be before its end")
	}
	return nil
}
