package shop

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Empanada de Queso", "empanada-de-queso"},
		{"  Jugo Hit!  ", "jugo-hit"},
		{"Combo #1 (Grande)", "combo-1-grande"},
		{"---", ""},
		{"Arepa", "arepa"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
