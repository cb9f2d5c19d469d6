package descriptor

import "fmt"

// idRegistry hands out unique operation ids in document order and remembers
// which operation claimed each one.
type idRegistry struct {
	owners map[string]string
}

func newIDRegistry() *idRegistry {
	return &idRegistry{owners: make(map[string]string)}
}

// claim reserves id for the operation at location. When id is taken, the
// first free id_N is reserved instead and the previous owner is returned.
func (r *idRegistry) claim(id, location string) (assigned, previous string) {
	if owner, taken := r.owners[id]; taken {
		assigned = uniqueName(id, r.taken)
		r.owners[assigned] = location
		return assigned, owner
	}
	r.owners[id] = location
	return id, ""
}

func (r *idRegistry) taken(id string) bool {
	_, ok := r.owners[id]
	return ok
}

// uniqueName returns base_N for the smallest N >= 1 that is not taken.
func uniqueName(base string, taken func(string) bool) string {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
