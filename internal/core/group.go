package core

// groupRows partitions rows by key in a single pass, preserving the order in
// which each key first appears. The first row of a key seeds its group record
// (descriptive fields); every row of the key — the first included — is then
// folded into the group's accumulators by add. No re-sorting happens here:
// output order is first-appearance order, so the source query's ORDER BY is
// the only ordering a grouped category has.
func groupRows[R any, K comparable, G any](rows []R, key func(R) K, seed func(R) *G, add func(*G, R)) []*G {
	index := make(map[K]*G, len(rows))
	groups := make([]*G, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		g, ok := index[k]
		if !ok {
			g = seed(r)
			index[k] = g
			groups = append(groups, g)
		}
		add(g, r)
	}
	return groups
}

// groupsAsAny adapts grouped results for the envelope payload.
func groupsAsAny[G any](groups []*G) []any {
	out := make([]any, len(groups))
	for i, g := range groups {
		out[i] = g
	}
	return out
}
