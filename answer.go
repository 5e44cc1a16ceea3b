package qalink

// Answer represents a stored answer. Questions holds the ids of the
// questions linked to it, in insertion order.
type Answer struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Questions []string `json:"questions"`
}

// Validate returns an error if the answer contains invalid fields.
func (a *Answer) Validate() error {
	if a.Text == "" {
		return Errorf(EINVALID, "answer text required")
	}
	return nil
}

// AnswerRef is an answer as seen from one of its linked questions.
type AnswerRef struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
