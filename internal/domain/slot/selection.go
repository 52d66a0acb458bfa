package slot

// Selection holds at most one slot ID.
type Selection struct {
	SlotID string `json:"selected_slot_id,omitempty"`
}

// Toggle selects s, replaces the current choice, or clears it when s is
// already selected. A slot that is not selectable leaves the selection alone.
func (sel *Selection) Toggle(s ParkingSlot) bool {
	if !s.Selectable() {
		return false
	}
	id := s.ID.String()
	if sel.SlotID == id {
		sel.SlotID = ""
	} else {
		sel.SlotID = id
	}
	return true
}

func (sel *Selection) Reset() {
	sel.SlotID = ""
}

func (sel Selection) Empty() bool {
	return sel.SlotID == ""
}
