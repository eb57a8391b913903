package eval

// Store is the memory an evaluation runs against: a growable array of int32
// slots and the table mapping each variable name to its slot. Names are
// assigned slots in the order they are first referenced and are never
// removed.
type Store struct {
	slots map[string]int
	names []string
	mem   []int32
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		slots: map[string]int{},
	}
}

// Declare returns the slot for name, allocating a zero-valued one if name has
// not been seen before.
func (s *Store) Declare(name string) int {
	if slot, ok := s.slots[name]; ok {
		return slot
	}
	slot := len(s.mem)
	s.slots[name] = slot
	s.names = append(s.names, name)
	s.mem = append(s.mem, 0)
	return slot
}

// Lookup returns the slot for name, if it has one.
func (s *Store) Lookup(name string) (int, bool) {
	slot, ok := s.slots[name]
	return slot, ok
}

// Load returns the value held in slot.
func (s *Store) Load(slot int) (int32, bool) {
	if slot < 0 || slot >= len(s.mem) {
		return 0, false
	}
	return s.mem[slot], true
}

// Set stores v into slot.
func (s *Store) Set(slot int, v int32) bool {
	if slot < 0 || slot >= len(s.mem) {
		return false
	}
	s.mem[slot] = v
	return true
}

// Get returns the value of the variable name, if it has a slot.
func (s *Store) Get(name string) (int32, bool) {
	slot, ok := s.slots[name]
	if !ok {
		return 0, false
	}
	return s.mem[slot], true
}

// Len is the number of allocated slots.
func (s *Store) Len() int {
	return len(s.mem)
}

// Names returns the variable names in slot order.
func (s *Store) Names() []string {
	return append([]string{}, s.names...)
}

// Values returns a copy of the memory, indexed by slot.
func (s *Store) Values() []int32 {
	return append([]int32{}, s.mem...)
}

// Map returns the store as a name to value map.
func (s *Store) Map() map[string]int32 {
	ret := make(map[string]int32, len(s.names))
	for i, name := range s.names {
		ret[name] = s.mem[i]
	}
	return ret
}
