package whiteboard

// PointerType is the kind of device behind a pointer.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

func (t PointerType) String() string {
	switch t {
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	}
	return "mouse"
}

// Pointer carries the fields shared by every pointer event. X and Y are in
// logical screen pixels relative to the surface's top-left corner.
type Pointer struct {
	ID      int
	X, Y    float64
	Buttons int
	Shift   bool
	Type    PointerType
}

func (p Pointer) Pos() Point { return Point{p.X, p.Y} }

// Event is an input delivered to Editor.Dispatch.
type Event interface {
	isEvent()
}

type (
	PointerDown   struct{ Pointer }
	PointerMove   struct{ Pointer }
	PointerUp     struct{ Pointer }
	PointerCancel struct{ Pointer }
	PointerLeave  struct{ Pointer }

	// LostCapture reports that the host could no longer route the pointer's
	// events to the editor.
	LostCapture struct{ ID int }

	// Resize reports the surface size in logical pixels and the device pixel
	// ratio of the backing buffer.
	Resize struct {
		Width, Height int
		DPR           float64
	}
)

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent() {}
func (PointerCancel) isEvent() {}
func (PointerLeave) isEvent() {}
func (LostCapture) isEvent() {}
func (Resize) isEvent() {}
