package dock

// Slot is the dock position a panel requests.
type Slot int

const (
	SlotLeft Slot = iota
	SlotCenter
	SlotRight
	SlotTop
	SlotBottom
	SlotTopLeft
	SlotTopRight
	SlotBottomLeft
	SlotBottomRight

	slotCount
)

// SlotNone marks the absence of a slot, for example when the pointer is
// outside every dock zone.
const SlotNone Slot = -1

var slotNames = [slotCount]string{
	SlotLeft:        "left",
	SlotCenter:      "center",
	SlotRight:       "right",
	SlotTop:         "top",
	SlotBottom:      "bottom",
	SlotTopLeft:     "top-left",
	SlotTopRight:    "top-right",
	SlotBottomLeft:  "bottom-left",
	SlotBottomRight: "bottom-right",
}

// AllSlots lists every slot in declaration order.
func AllSlots() []Slot {
	out := make([]Slot, 0, slotCount)
	for s := SlotLeft; s < slotCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s Slot) String() string {
	if !s.Valid() {
		return "none"
	}
	return slotNames[s]
}

// Valid reports whether s is one of the nine dock slots.
func (s Slot) Valid() bool { return s >= SlotLeft && s < slotCount }

// IsCorner reports whether s is one of the four corner slots.
func (s Slot) IsCorner() bool {
	return s == SlotTopLeft || s == SlotTopRight || s == SlotBottomLeft || s == SlotBottomRight
}

// ParseSlot returns the slot named by s (as printed by String).
func ParseSlot(s string) (Slot, bool) {
	for i, name := range slotNames {
		if name == s {
			return Slot(i), true
		}
	}
	return SlotNone, false
}

// corner describes how a corner cell relates to its neighbours.
type corner struct {
	slot   Slot
	column Slot // side column of the middle band
	band   Slot // edge slot filling the band's center
	top    bool
	left   bool
}

var corners = [4]corner{
	{slot: SlotTopLeft, column: SlotLeft, band: SlotTop, top: true, left: true},
	{slot: SlotTopRight, column: SlotRight, band: SlotTop, top: true, left: false},
	{slot: SlotBottomLeft, column: SlotLeft, band: SlotBottom, top: false, left: true},
	{slot: SlotBottomRight, column: SlotRight, band: SlotBottom, top: false, left: false},
}

// cornerIndex maps a corner slot onto its index in corners.
func cornerIndex(s Slot) int {
	for i, c := range corners {
		if c.slot == s {
			return i
		}
	}
	return -1
}
