package core

// Envelope is the uniform response wrapper for every report category,
// regardless of internal nesting depth. Data is always an array: grouped
// categories hold one element per group, single-row summaries hold one
// element, and flat categories hold the row sequence unchanged.
type Envelope struct {
	Success int    `json:"success"`
	Message string `json:"message,omitempty"`
	Data    []any  `json:"data"`
}

func dataEnvelope(items []any) *Envelope {
	if items == nil {
		items = []any{}
	}
	return &Envelope{Success: 1, Data: items}
}

// rowsAsAny adapts a flat row sequence for pass-through envelopes.
func rowsAsAny(rows []Row) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// oneRowAsAny adapts a single-row summary result; an absent row yields an
// empty payload rather than a null entry.
func oneRowAsAny(r Row) []any {
	if r == nil {
		return []any{}
	}
	return []any{r}
}
