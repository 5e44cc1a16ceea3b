package qalink

// Question represents a stored question. Answers holds the ids of the
// answers linked to it, in insertion order.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Description string   `json:"description"`
	Answers     []string `json:"answers"`
}

// Validate returns an error if the question contains invalid fields.
func (q *Question) Validate() error {
	if q.Text == "" {
		return Errorf(EINVALID, "question text required")
	}
	return nil
}

// QuestionRef is a question as seen from one of its linked answers.
type QuestionRef struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
}
