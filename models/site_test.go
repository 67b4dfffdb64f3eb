package models

import (
	"testing"
	"time"
)

func TestServiceWindowContains(t *testing.T) {
	w := ServiceWindow{StartMinute: 480, EndMinute: 720}
	tests := []struct {
		minute int
		want   bool
	}{
		{479, false},
		{480, true},
		{600, true},
		{720, true},
		{721, false},
	}
	for _, tt := range tests {
		if got := w.Contains(tt.minute); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.minute, got, tt.want)
		}
	}
}

func TestSiteConfigValidate(t *testing.T) {
	today := time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)

	valid := &SiteConfig{
		ID:    "site",
		Hours: []ServiceWindow{{StartMinute: 480, EndMinute: 720}},
		WeekendDays: []WeekendDay{
			{DayOfWeek: time.Saturday, Hours: []ServiceWindow{{StartMinute: 540, EndMinute: 780}}},
		},
		DayBlocks:      []string{"2025-03-11", "2025-04-01"},
		VacationBlocks: []VacationRange{{StartDate: "2025-06-15", EndDate: "2025-07-15"}},
	}
	if err := valid.Validate(today); err != nil {
		t.Fatalf("Validate returned %v for a valid config", err)
	}

	cases := []struct {
		name   string
		mutate func(*SiteConfig)
	}{
		{"inverted window", func(s *SiteConfig) { s.Hours = []ServiceWindow{{StartMinute: 720, EndMinute: 480}} }},
		{"weekday as weekend", func(s *SiteConfig) { s.WeekendDays = []WeekendDay{{DayOfWeek: time.Monday}} }},
		{"duplicate weekend day", func(s *SiteConfig) {
			s.WeekendDays = []WeekendDay{{DayOfWeek: time.Saturday}, {DayOfWeek: time.Saturday}}
		}},
		{"past day block", func(s *SiteConfig) { s.DayBlocks = []string{"2025-03-10"} }},
		{"malformed day block", func(s *SiteConfig) { s.DayBlocks = []string{"11-03-2025"} }},
		{"inverted vacation", func(s *SiteConfig) {
			s.VacationBlocks = []VacationRange{{StartDate: "2025-07-15", EndDate: "2025-06-15"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := *valid
			tc.mutate(&cfg)
			if err := cfg.Validate(today); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}
