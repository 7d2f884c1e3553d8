package draft

// toppingSet is a set of ids that iterates in insertion order.
type toppingSet struct {
	order []string
	index map[string]struct{}
}

func newToppingSet(ids ...string) *toppingSet {
	s := &toppingSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *toppingSet) add(id string) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *toppingSet) remove(id string) {
	if _, ok := s.index[id]; !ok {
		return
	}
	delete(s.index, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *toppingSet) toggle(id string) bool {
	if s.has(id) {
		s.remove(id)
		return false
	}
	s.add(id)
	return true
}

func (s *toppingSet) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *toppingSet) len() int {
	return len(s.order)
}

func (s *toppingSet) ids() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
