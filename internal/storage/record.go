// Package storage holds what the SQL and in-memory adapters share: the raw
// record shape, record-to-entity mappers and driver error classification.
package storage

// Record is one persisted row keyed by column name.
type Record map[string]any

// Clone returns a shallow copy; adapters hand out clones so callers cannot
// mutate stored rows.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ID returns the integer primary key of the record, if present.
func (r Record) ID() (int64, bool) {
	v, ok := r["id"]
	if !ok || v == nil {
		return 0, false
	}
	return asInt64(v)
}
