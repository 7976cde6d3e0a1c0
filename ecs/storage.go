package ecs

// entityStore tracks slot generations and recycles freed slots, newest first.
type entityStore struct {
	gen   []uint32
	alive []bool
	free  []uint32
	count int
}

func (s *entityStore) create() Entity {
	var slot uint32
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		slot = uint32(len(s.gen))
	}
	s.alive[slot-1] = true
	s.count++
	return newEntity(slot, s.gen[slot-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	i := e.index()
	s.gen[i]++
	s.alive[i] = false
	s.free = append(s.free, e.Slot())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	i := e.index()
	if i < 0 || i >= len(s.gen) {
		return false
	}
	return s.alive[i] && s.gen[i] == e.Generation()
}

// live returns the current handle of every occupied slot.
func (s *entityStore) live() []Entity {
	out := make([]Entity, 0, s.count)
	for i, alive := range s.alive {
		if alive {
			out = append(out, newEntity(uint32(i+1), s.gen[i]))
		}
	}
	return out
}
