package qalink

import "context"

// StoreService represents a service for managing questions, answers and the
// bidirectional links between them.
//
// Links are stored redundantly on both sides: for every question q and
// answer a, a appears in q.Answers iff q appears in a.Questions. Link and
// Unlink mutate both sides together so the invariant holds by construction.
type StoreService interface {
	// AddQuestion creates a new question and returns its id. Ids are
	// assigned sequentially: the Nth question added to an empty store
	// gets id "N". The text is also stored as the initial description.
	AddQuestion(ctx context.Context, text string) (string, error)

	// AddAnswer creates a new answer and returns its id. If questionIDs
	// is non-empty the answer is immediately linked to each question.
	// Returns ENOTFOUND if any referenced question does not exist.
	AddAnswer(ctx context.Context, text string, questionIDs []string) (string, error)

	// Link associates an answer with a question on both sides.
	// Idempotent: linking an already-linked pair is a no-op.
	// Returns ENOTFOUND if either id does not exist.
	Link(ctx context.Context, answerID, questionID string) error

	// Unlink removes the association from both sides. Absent ids or an
	// already-unlinked pair are not errors.
	Unlink(ctx context.Context, answerID, questionID string) error

	// FindQuestionByID retrieves a question by id.
	// Returns ENOTFOUND if the question does not exist.
	FindQuestionByID(ctx context.Context, id string) (*Question, error)

	// Questions retrieves all questions in ascending numeric id order,
	// which for sequentially assigned ids equals insertion order.
	Questions(ctx context.Context) ([]*Question, error)

	// AnswersForQuestion resolves the answers linked to a question.
	// Unknown question ids yield an empty list, not an error. Ids that
	// no longer resolve to an answer are filtered out; stored order is
	// preserved otherwise.
	AnswersForQuestion(ctx context.Context, questionID string) ([]AnswerRef, error)

	// QuestionsForAnswer resolves the questions linked to an answer,
	// with the same unknown-id and dangling-id behavior as
	// AnswersForQuestion.
	QuestionsForAnswer(ctx context.Context, answerID string) ([]QuestionRef, error)
}
