package chip

// Select returns the chips whose name is in names, in the order of defs.
// An empty names list selects every chip. Unknown names are ignored.
func Select(defs []Definition, names []string) []Definition {
	if len(names) == 0 {
		return defs
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	out := make([]Definition, 0, len(names))
	for _, d := range defs {
		if _, ok := wanted[d.Name]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the first chip with the given name.
func Find(defs []Definition, name string) (*Definition, bool) {
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i], true
		}
	}
	return nil, false
}
