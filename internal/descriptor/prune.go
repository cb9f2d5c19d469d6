package descriptor

// Prune removes every type that no service reaches, directly or through
// other types. Types referenced only from error responses are kept. It
// returns the names of the removed types in model order.
func (m *Model) Prune() []string {
	byName := make(map[string]*TypeDescriptor, len(m.Types))
	for _, t := range m.Types {
		byName[t.Name] = t
	}

	reached := map[string]bool{}
	var pending []string
	reach := func(name string) {
		if !reached[name] {
			reached[name] = true
			pending = append(pending, name)
		}
	}
	for _, svc := range m.Services {
		for _, imp := range svc.Dependencies.Imports {
			reach(imp.Type)
		}
		for _, name := range svc.Dependencies.Additional {
			reach(name)
		}
	}

	for len(pending) > 0 {
		name := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		td := byName[name]
		if td == nil {
			continue
		}
		// References were checked when the type was built.
		_ = walkRefs(td.Schema, func(ref string) error {
			reach(m.refName(ref))
			return nil
		})
	}

	var kept []*TypeDescriptor
	var removed []string
	for _, t := range m.Types {
		if reached[t.Name] {
			kept = append(kept, t)
		} else {
			removed = append(removed, t.Name)
		}
	}
	m.Types = kept
	return removed
}

func (m *Model) refName(ref string) string {
	if m.refClass == nil {
		return ref
	}
	return m.refClass(ref)
}
