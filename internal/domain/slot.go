package domain

// Slot is a bookable unit: a lesson with or without the TV set
type Slot struct {
	Lesson Lesson
	TV     bool
}

// SlotCatalog is the ordered list of every slot offered for a date
type SlotCatalog []Slot

// DefaultCatalog returns lessons x {no TV, TV} in display order.
// A fresh copy is returned on every call so callers can't mutate the shared catalog.
func DefaultCatalog() SlotCatalog {
	catalog := make(SlotCatalog, 0, len(Lessons)*2)
	for _, lesson := range Lessons {
		catalog = append(catalog, Slot{Lesson: lesson, TV: false}, Slot{Lesson: lesson, TV: true})
	}
	return catalog
}

// Contains reports whether the slot is part of the catalog
func (c SlotCatalog) Contains(slot Slot) bool {
	for _, s := range c {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotState tags an availability entry
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotBooked    SlotState = "booked"
)

// AvailabilitySlot is a catalog slot annotated with its state for a date.
// Detail is set only when State == SlotBooked.
type AvailabilitySlot struct {
	Slot   Slot
	State  SlotState
	Detail *BookingDetail
}

// IsBooked returns true if the slot is taken
func (s AvailabilitySlot) IsBooked() bool {
	return s.State == SlotBooked
}

// DeriveAvailability annotates every catalog slot with whether some detail occupies it.
// The result has one entry per catalog slot in catalog order. When several details
// claim the same slot the last one wins; details outside the catalog are ignored.
func DeriveAvailability(catalog SlotCatalog, booked []BookingDetail) []AvailabilitySlot {
	occupied := make(map[Slot]*BookingDetail, len(booked))
	for i := range booked {
		occupied[booked[i].Slot()] = &booked[i]
	}

	result := make([]AvailabilitySlot, 0, len(catalog))
	for _, slot := range catalog {
		entry := AvailabilitySlot{Slot: slot, State: SlotAvailable}
		if detail, ok := occupied[slot]; ok {
			d := *detail
			entry.State = SlotBooked
			entry.Detail = &d
		}
		result = append(result, entry)
	}
	return result
}

// Partition splits derived availability into free and taken slots, keeping the order
func Partition(slots []AvailabilitySlot) (available, booked []AvailabilitySlot) {
	available = make([]AvailabilitySlot, 0, len(slots))
	booked = make([]AvailabilitySlot, 0, len(slots))
	for _, s := range slots {
		if s.IsBooked() {
			booked = append(booked, s)
		} else {
			available = append(available, s)
		}
	}
	return available, booked
}

// IsAvailable reports whether the slot is present in the derived list and free
func IsAvailable(slots []AvailabilitySlot, slot Slot) bool {
	for _, s := range slots {
		if s.Slot == slot {
			return !s.IsBooked()
		}
	}
	return false
}
