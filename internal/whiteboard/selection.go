package whiteboard

import "sort"

// Selection is a set of action ids.
type Selection struct {
	ids map[int64]struct{}
}

func (s *Selection) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Add(ids ...int64) {
	if s.ids == nil {
		s.ids = make(map[int64]struct{}, len(ids))
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) Clear() { s.ids = nil }

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bounds returns the union of the bounding boxes of the selected actions found
// in actions.
func (s *Selection) Bounds(actions []*Action) (Box, bool) {
	var box Box
	found := false
	for _, a := range actions {
		if !s.Has(a.ID) {
			continue
		}
		b, ok := a.Bounds()
		if !ok {
			continue
		}
		if !found {
			box, found = b, true
			continue
		}
		box = box.Union(b)
	}
	return box, found
}

// prune drops ids that are not among actions.
func (s *Selection) prune(actions []*Action) {
	if len(s.ids) == 0 {
		return
	}
	live := make(map[int64]struct{}, len(s.ids))
	for _, a := range actions {
		if s.Has(a.ID) {
			live[a.ID] = struct{}{}
		}
	}
	s.ids = live
}
