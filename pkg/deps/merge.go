package deps

// Merge combines two dependency lists, with incoming taking precedence on
// every field except the pinned revision: an incoming record that does not
// specify a pin must not erase a pin already recorded in base.
//
// The result preserves base's insertion order; incoming records that match
// no base entry are appended at the end in their original relative order.
// Matching is always a name-keyed lookup — never positional — so differently
// ordered or differently sized lists merge correctly.
//
// Merge(L, L) yields a list equal to L, and Merge(nil, incoming) returns a
// copy of incoming.
func Merge(base, incoming List) List {
	if len(base) == 0 {
		return incoming.Clone()
	}

	merged := base.Clone()
	for _, rec := range incoming {
		idx := merged.Find(rec.Name)
		if idx < 0 {
			merged = append(merged, rec)
			continue
		}
		if !rec.HasPin() {
			// Preserve the previously recorded pin.
			rec.Pin = merged[idx].Pin
		}
		merged[idx] = rec
	}
	return merged
}
