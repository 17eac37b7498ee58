package whiteboard

// GestureState classifies how many pointers are down.
type GestureState int

const (
	GestureIdle GestureState = iota
	GestureSingle
	GestureMulti
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureSingle:
		return "single"
	}
	return "multi"
}

// GestureStep is the change between two successive two-pointer samples.
type GestureStep struct {
	// Factor is the ratio of the current pointer distance to the previous one.
	Factor float64
	// Pan is the screen-space displacement of the midpoint.
	Pan Point
	// Mid is the current midpoint, used as the zoom anchor.
	Mid Point
}

type trackedPointer struct {
	pos   Point
	order uint64
}

// GestureTracker follows active pointers by id and turns the motion of the
// first two into pinch and pan steps.
type GestureTracker struct {
	pointers map[int]*trackedPointer
	seq      uint64

	primed   bool
	prevDist float64
	prevMid  Point
}

func (g *GestureTracker) Count() int { return len(g.pointers) }

func (g *GestureTracker) State() GestureState {
	switch n := len(g.pointers); {
	case n == 0:
		return GestureIdle
	case n == 1:
		return GestureSingle
	}
	return GestureMulti
}

// Tracking reports whether id is a pointer currently down.
func (g *GestureTracker) Tracking(id int) bool {
	_, ok := g.pointers[id]
	return ok
}

// Down starts tracking id at screen position p.
func (g *GestureTracker) Down(id int, p Point) GestureState {
	if g.pointers == nil {
		g.pointers = make(map[int]*trackedPointer)
	}
	g.seq++
	g.pointers[id] = &trackedPointer{pos: p, order: g.seq}
	g.primed = false
	if len(g.pointers) >= 2 {
		g.prime()
	}
	return g.State()
}

// Move records the new position of id. ok is true when at least two pointers
// are down and a previous sample exists to compare against.
func (g *GestureTracker) Move(id int, p Point) (step GestureStep, ok bool) {
	tp, tracked := g.pointers[id]
	if !tracked {
		return GestureStep{}, false
	}
	tp.pos = p
	if len(g.pointers) < 2 {
		return GestureStep{}, false
	}
	if !g.primed {
		g.prime()
		return GestureStep{}, false
	}
	a, b := g.firstTwo()
	dist := a.Dist(b)
	mid := a.Mid(b)
	step = GestureStep{Factor: 1, Pan: mid.Sub(g.prevMid), Mid: mid}
	if g.prevDist > 0 && dist > 0 {
		step.Factor = dist / g.prevDist
	}
	g.prevDist, g.prevMid = dist, mid
	return step, true
}

// Up stops tracking id.
func (g *GestureTracker) Up(id int) GestureState {
	delete(g.pointers, id)
	if len(g.pointers) < 2 {
		g.primed = false
		g.prevDist = 0
		g.prevMid = Point{}
	} else {
		// the leading pair may have changed
		g.prime()
	}
	return g.State()
}

// Reset forgets every pointer.
func (g *GestureTracker) Reset() {
	g.pointers = nil
	g.primed = false
	g.prevDist = 0
	g.prevMid = Point{}
}

func (g *GestureTracker) prime() {
	a, b := g.firstTwo()
	g.prevDist = a.Dist(b)
	g.prevMid = a.Mid(b)
	g.primed = true
}

// firstTwo returns the positions of the two longest-held pointers.
func (g *GestureTracker) firstTwo() (Point, Point) {
	var first, second *trackedPointer
	for _, tp := range g.pointers {
		switch {
		case first == nil || tp.order < first.order:
			second = first
			first = tp
		case second == nil || tp.order < second.order:
			second = tp
		}
	}
	if second == nil {
		return first.pos, first.pos
	}
	return first.pos, second.pos
}
