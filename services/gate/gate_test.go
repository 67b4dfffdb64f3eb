package gate

import (
	"testing"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/models"
)

// March 2025: the 11th is a Tuesday, the 15th a Saturday, the 16th a Sunday.
func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
}

func splitShiftConfig() *models.SiteConfig {
	return &models.SiteConfig{
		ID:   "site",
		Name: "cooperative",
		Hours: []models.ServiceWindow{
			{StartMinute: 8 * 60, EndMinute: 12 * 60},
			{StartMinute: 14 * 60, EndMinute: 18 * 60},
		},
	}
}

func TestEvaluateNoConfigAllows(t *testing.T) {
	if !Evaluate(nil, at(11, 13, 0)) {
		t.Fatal("missing configuration must keep the shop open")
	}
}

func TestEvaluateWeekdayWindows(t *testing.T) {
	cfg := splitShiftConfig()
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before opening", at(11, 7, 59), false},
		{"exact opening minute", at(11, 8, 0), true},
		{"mid morning", at(11, 10, 30), true},
		{"exact closing minute", at(11, 12, 0), true},
		{"lunch gap", at(11, 13, 0), false},
		{"afternoon shift", at(11, 15, 0), true},
		{"exact evening close", at(11, 18, 0), true},
		{"after hours", at(11, 18, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(cfg, tt.now); got != tt.want {
				t.Errorf("Evaluate(%s) = %v, want %v", tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestEvaluateWeekdayNoHoursDenies(t *testing.T) {
	cfg := &models.SiteConfig{ID: "site"}
	if Evaluate(cfg, at(11, 10, 0)) {
		t.Fatal("a configured site with no weekday hours must deny")
	}
}

func TestEvaluateWeekend(t *testing.T) {
	cfg := splitShiftConfig()
	if Evaluate(cfg, at(15, 10, 0)) {
		t.Fatal("Saturday without a weekend row must deny even inside weekday hours")
	}

	cfg.WeekendDays = []models.WeekendDay{
		{DayOfWeek: time.Saturday, Hours: []models.ServiceWindow{{StartMinute: 9 * 60, EndMinute: 13 * 60}}},
		{DayOfWeek: time.Sunday},
	}
	if !Evaluate(cfg, at(15, 9, 0)) {
		t.Error("Saturday inside its window must allow")
	}
	if Evaluate(cfg, at(15, 13, 1)) {
		t.Error("Saturday past its window must deny")
	}
	if Evaluate(cfg, at(16, 10, 0)) {
		t.Error("a weekend row with zero windows must deny the whole day")
	}
}

func TestEvaluateDayBlock(t *testing.T) {
	cfg := splitShiftConfig()
	cfg.DayBlocks = []string{"2025-03-11"}
	if Evaluate(cfg, at(11, 10, 0)) {
		t.Fatal("a day block must deny even inside service hours")
	}
	if !Evaluate(cfg, at(12, 10, 0)) {
		t.Fatal("a day block only covers its own date")
	}
}

func TestEvaluateVacationRange(t *testing.T) {
	cfg := splitShiftConfig()
	cfg.VacationBlocks = []models.VacationRange{{StartDate: "2025-03-10", EndDate: "2025-03-12"}}
	tests := []struct {
		day  int
		want bool
	}{
		{10, false}, // start date, inclusive
		{11, false},
		{12, false}, // end date, inclusive
		{13, true},
	}
	for _, tt := range tests {
		if got := Evaluate(cfg, at(tt.day, 10, 0)); got != tt.want {
			t.Errorf("Evaluate(2025-03-%02d) = %v, want %v", tt.day, got, tt.want)
		}
	}
}
