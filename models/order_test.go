package models

import "testing"

func sampleOrder() *Order {
	return &Order{
		ID:            "o1",
		UserCode:      "1001",
		Status:        OrderStatusPending,
		SchoolAddress: AddressClassroom01,
		Items: []OrderItem{
			{ProductID: "p1", Name: "Empanada", PriceCents: 150000, Quantity: 2},
			{ProductID: "p2", Name: "Jugo", PriceCents: 100000, Quantity: 1},
		},
	}
}

func TestOrderTotals(t *testing.T) {
	o := sampleOrder()
	if got := o.ItemsCostCents(); got != 400000 {
		t.Errorf("ItemsCostCents = %d, want 400000", got)
	}
	if got := o.TotalCents(50000); got != 450000 {
		t.Errorf("TotalCents with delivery = %d, want 450000", got)
	}

	o.SchoolAddress = AddressCooperative
	if got := o.TotalCents(50000); got != 400000 {
		t.Errorf("cooperative pickup must skip the fee, got %d", got)
	}
}

func TestOrderItemLookup(t *testing.T) {
	o := sampleOrder()
	if item := o.Item("p2"); item == nil || item.Name != "Jugo" {
		t.Errorf("Item(p2) = %+v, want the Jugo line", item)
	}
	if item := o.Item("missing"); item != nil {
		t.Errorf("Item(missing) = %+v, want nil", item)
	}
}

func TestValidSchoolAddress(t *testing.T) {
	for _, addr := range []string{AddressCooperative, AddressClassroom01, AddressClassroom02, AddressRectory} {
		if !ValidSchoolAddress(addr) {
			t.Errorf("ValidSchoolAddress(%s) = false, want true", addr)
		}
	}
	if ValidSchoolAddress("gym") {
		t.Error("ValidSchoolAddress(gym) = true, want false")
	}
}
