package appointment

// slotUniverse is the fixed daily grid: nine one-hour slots from opening
// to closing, with the midday slot labelled 12:00 PM.
var slotUniverse = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}

// SlotUniverse returns the ordered set of bookable time labels.
func SlotUniverse() []string {
	slots := make([]string, len(slotUniverse))
	copy(slots, slotUniverse)
	return slots
}

// ValidSlot reports whether the label belongs to the daily grid.
func ValidSlot(label string) bool {
	for _, s := range slotUniverse {
		if s == label {
			return true
		}
	}
	return false
}

// subtractBooked returns the universe minus the booked labels, preserving
// grid order.
func subtractBooked(booked []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}

	available := make([]string, 0, len(slotUniverse))
	for _, s := range slotUniverse {
		if !taken[s] {
			available = append(available, s)
		}
	}
	return available
}
