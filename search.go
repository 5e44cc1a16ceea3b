package qalink

// Search stages, in resolution order. The resolver stops at the first
// stage that yields results; StageNone means the query produced nothing.
const (
	StageNone      = "none"
	StageID        = "id"
	StageSubstring = "substring"
	StageFallback  = "fallback"
)

// SearchResult is a question matched by a search query, enriched with its
// resolved answers. SimilarityScore is attached for observability when the
// fallback stage produced a numeric score; it is not part of the matching
// contract.
type SearchResult struct {
	ID              string      `json:"id"`
	Text            string      `json:"text"`
	Description     string      `json:"description"`
	Answers         []AnswerRef `json:"answers"`
	SimilarityScore *float64    `json:"similarity_score,omitempty"`
}
