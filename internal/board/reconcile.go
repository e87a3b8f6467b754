package board

// Reconcile merges a freshly fetched order set into the cached one. The
// cached set's insertion order is kept, fetched data wins field-by-field,
// with two exceptions:
//
//   - A cached status that staff already moved past pending is never reverted
//     by a stale fetch still reporting the old status.
//   - Ids in removed (orders staff rejected or dispatched) never re-enter,
//     no matter what the fetch reports.
//
// Orders cached but absent from the fetch are retained; transient gaps in a
// poll response must not drop live orders. The changed flag reports whether
// the merge produced a real delta (a new id, or any status difference against
// the cache); callers publish state and advance the cache timestamp only then.
func Reconcile(cached, fetched []Order, removed map[string]struct{}) ([]Order, bool) {
	merged := make([]Order, len(cached))
	copy(merged, cached)

	index := make(map[string]int, len(cached))
	for i, c := range cached {
		index[c.ID] = i
	}

	changed := false
	for _, f := range fetched {
		if _, gone := removed[f.ID]; gone {
			continue
		}

		i, exists := index[f.ID]
		if !exists {
			index[f.ID] = len(merged)
			merged = append(merged, f)
			changed = true
			continue
		}

		prev := merged[i].Status
		if prev != f.Status && prev != StatusPending {
			f.Status = prev
		}
		if f.Status != prev {
			changed = true
		}
		merged[i] = f
	}

	if len(cached) == 0 {
		changed = len(merged) > 0
	}
	return merged, changed
}
