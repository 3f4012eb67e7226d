package ecs

// entityStore tracks entity generations and free ids. Ids are 1-based so the
// zero Entity is never valid.
type entityStore struct {
	gen   []generation
	alive []bool
	free  []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gen))
	}
	s.alive[id-1] = true
	return makeEntity(id, s.gen[id-1])
}

// kill marks e dead without releasing its id.
func (s *entityStore) kill(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.alive[e.id()-1] = false
	return true
}

// release bumps the generation and returns the id to the free list.
func (s *entityStore) release(e Entity) {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) || s.gen[id-1] != e.generation() {
		return
	}
	s.gen[id-1]++
	s.alive[id-1] = false
	s.free = append(s.free, id)
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.alive[id-1] && s.gen[id-1] == e.generation()
}

func (s *entityStore) count() int {
	n := 0
	for _, a := range s.alive {
		if a {
			n++
		}
	}
	return n
}
