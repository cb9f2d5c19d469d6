package model

// Entry is one key/value pair of an Ordered mapping.
type Entry[V any] struct {
	Name  string `json:"name"`
	Value V      `json:"value"`
}

// Ordered is a mapping that keeps document order. Paths, properties and
// component tables all rely on it for deterministic output.
type Ordered[V any] []Entry[V]

// Set replaces the value stored under name or appends a new entry.
func (o *Ordered[V]) Set(name string, value V) {
	for i := range *o {
		if (*o)[i].Name == name {
			(*o)[i].Value = value
			return
		}
	}
	*o = append(*o, Entry[V]{Name: name, Value: value})
}

// Get returns the value stored under name.
func (o Ordered[V]) Get(name string) (V, bool) {
	for _, e := range o {
		if e.Name == name {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Names returns the keys in document order.
func (o Ordered[V]) Names() []string {
	names := make([]string, len(o))
	for i, e := range o {
		names[i] = e.Name
	}
	return names
}
