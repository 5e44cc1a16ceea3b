package qalink

// AuditReport summarizes a consistency pass over the persisted store.
// Errors are broken invariants (dangling references, missing backlinks);
// warnings are informational findings (orphan entities) that are never
// auto-repaired.
type AuditReport struct {
	Questions int      `json:"questions"`
	Answers   int      `json:"answers"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	Fixes     int      `json:"fixes"`
}

// OK reports whether the pass found no errors. Warnings do not affect it.
func (r *AuditReport) OK() bool {
	return len(r.Errors) == 0
}
