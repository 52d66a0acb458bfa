//go:build unit

package slot_test

import (
	"testing"

	"parking-booking-gateway/internal/domain/slot"
	"parking-booking-gateway/tests/common/builder"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	slots := []slot.ParkingSlot{
		builder.NewSlot("1", "2-wheeler"),
		builder.NewSlot("2", "Car"),
		builder.NewSlot("3", "two_wheeler"),
		builder.NewSlot("4", "truck"),
	}

	p := slot.Partition(slots)

	assert.Len(t, p.TwoWheeler, 2)
	assert.Len(t, p.FourWheeler, 1)
	assert.Len(t, p.Other, 1)
}

func TestSelection_Toggle(t *testing.T) {
	a := builder.NewSlot("A", "4-wheeler")
	b := builder.NewSlot("B", "4-wheeler")
	taken := builder.NewTakenSlot("C", "4-wheeler")

	t.Run("selecting B after A replaces, selecting B again clears", func(t *testing.T) {
		var sel slot.Selection
		assert.True(t, sel.Toggle(a))
		assert.True(t, sel.Toggle(b))
		assert.Equal(t, "B", sel.SlotID)

		assert.True(t, sel.Toggle(b))
		assert.True(t, sel.Empty())
	})

	t.Run("unavailable slot is a no-op", func(t *testing.T) {
		sel := slot.Selection{SlotID: "A"}
		assert.False(t, sel.Toggle(taken))
		assert.Equal(t, "A", sel.SlotID)
	})
}

func TestSelectable(t *testing.T) {
	slots := []slot.ParkingSlot{builder.NewSlot("1", "car"), builder.NewTakenSlot("2", "car")}

	assert.True(t, slot.Selectable(slots, "1"))
	assert.False(t, slot.Selectable(slots, "2"))
	assert.False(t, slot.Selectable(slots, "3"))
}
