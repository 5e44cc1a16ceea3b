package mock

import (
	"context"

	"github.com/fwojciec/qalink"
)

var _ qalink.StoreService = (*StoreService)(nil)

// StoreService is a mock implementation of qalink.StoreService.
type StoreService struct {
	AddQuestionFn        func(ctx context.Context, text string) (string, error)
	AddAnswerFn          func(ctx context.Context, text string, questionIDs []string) (string, error)
	LinkFn               func(ctx context.Context, answerID, questionID string) error
	UnlinkFn             func(ctx context.Context, answerID, questionID string) error
	FindQuestionByIDFn   func(ctx context.Context, id string) (*qalink.Question, error)
	QuestionsFn          func(ctx context.Context) ([]*qalink.Question, error)
	AnswersForQuestionFn func(ctx context.Context, questionID string) ([]qalink.AnswerRef, error)
	QuestionsForAnswerFn func(ctx context.Context, answerID string) ([]qalink.QuestionRef, error)
}

func (s *StoreService) AddQuestion(ctx context.Context, text string) (string, error) {
	return s.AddQuestionFn(ctx, text)
}

func (s *StoreService) AddAnswer(ctx context.Context, text string, questionIDs []string) (string, error) {
	return s.AddAnswerFn(ctx, text, questionIDs)
}

func (s *StoreService) Link(ctx context.Context, answerID, questionID string) error {
	return s.LinkFn(ctx, answerID, questionID)
}

func (s *StoreService) Unlink(ctx context.Context, answerID, questionID string) error {
	return s.UnlinkFn(ctx, answerID, questionID)
}

func (s *StoreService) FindQuestionByID(ctx context.Context, id string) (*qalink.Question, error) {
	return s.FindQuestionByIDFn(ctx, id)
}

func (s *StoreService) Questions(ctx context.Context) ([]*qalink.Question, error) {
	return s.QuestionsFn(ctx)
}

func (s *StoreService) AnswersForQuestion(ctx context.Context, questionID string) ([]qalink.AnswerRef, error) {
	return s.AnswersForQuestionFn(ctx, questionID)
}

func (s *StoreService) QuestionsForAnswer(ctx context.Context, answerID string) ([]qalink.QuestionRef, error) {
	return s.QuestionsForAnswerFn(ctx, answerID)
}
