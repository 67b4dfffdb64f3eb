package order

import (
	"testing"

	"github.com/KevinDarioIguaran/LCLGSC/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{models.OrderStatusPending, models.OrderStatusCompleted, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusRefunded, true},
		{models.OrderStatusCompleted, models.OrderStatusPending, false},
		{models.OrderStatusCompleted, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusRefunded, false},
		{models.OrderStatusRefunded, models.OrderStatusPending, false},
		{models.OrderStatus("unknown"), models.OrderStatusCompleted, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
	} {
		if !IsTerminal(status) {
			t.Errorf("IsTerminal(%s) = false, want true", status)
		}
	}
	if IsTerminal(models.OrderStatusPending) {
		t.Error("IsTerminal(pending) = true, want false")
	}
	if IsTerminal(models.OrderStatus("unknown")) {
		t.Error("IsTerminal(unknown) = true, want false")
	}
}
