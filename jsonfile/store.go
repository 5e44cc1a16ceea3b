package jsonfile

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strconv"
	"sync"

	"github.com/fwojciec/qalink"
)

// Compile-time interface verification.
var _ qalink.StoreService = (*Store)(nil)

// Store implements qalink.StoreService backed by a single JSON file.
//
// The whole document lives in memory; every mutation rewrites the file
// atomically before returning. One RWMutex serializes the read-modify-write
// cycle, so concurrent callers within the process cannot lose updates.
// There is no cross-process locking: concurrent writers from separate
// processes remain last-writer-wins on the whole-file snapshot.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  *Document
}

// NewStore creates a new Store persisting to the given path.
func NewStore(path string) *Store {
	return &Store{path: path, doc: NewDocument()}
}

// Open loads the store file into memory. A missing or unparsable file
// leaves the store empty in memory without touching the file; the next
// mutation writes a fresh snapshot.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := ReadDocument(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		// Corrupt file: start fresh, keep the file intact until the
		// next write.
		return nil
	}
	s.doc = doc
	return nil
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// AddQuestion creates a new question with the next sequential id.
func (s *Store) AddQuestion(ctx context.Context, text string) (string, error) {
	q := &qalink.Question{Text: text}
	if err := q.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(len(s.doc.Questions) + 1)
	s.doc.Questions[id] = &QuestionRecord{
		Text:        text,
		Description: text,
		Answers:     []string{},
	}
	if err := s.save(); err != nil {
		return "", err
	}
	return id, nil
}

// AddAnswer creates a new answer with the next sequential id and links it
// to each given question.
func (s *Store) AddAnswer(ctx context.Context, text string, questionIDs []string) (string, error) {
	a := &qalink.Answer{Text: text}
	if err := a.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, qid := range questionIDs {
		if _, ok := s.doc.Questions[qid]; !ok {
			return "", qalink.Errorf(qalink.ENOTFOUND, "question %q not found", qid)
		}
	}

	id := strconv.Itoa(len(s.doc.Answers) + 1)
	s.doc.Answers[id] = &AnswerRecord{
		Text:      text,
		Questions: []string{},
	}

	if len(questionIDs) == 0 {
		if err := s.save(); err != nil {
			return "", err
		}
		return id, nil
	}

	for _, qid := range questionIDs {
		if err := s.link(id, qid); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Link associates an answer with a question on both sides and persists.
func (s *Store) Link(ctx context.Context, answerID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.link(answerID, questionID)
}

// link mutates both sides of the relation and saves. Callers must hold the
// write lock.
func (s *Store) link(answerID, questionID string) error {
	q, ok := s.doc.Questions[questionID]
	if !ok {
		return qalink.Errorf(qalink.ENOTFOUND, "question %q not found", questionID)
	}
	a, ok := s.doc.Answers[answerID]
	if !ok {
		return qalink.Errorf(qalink.ENOTFOUND, "answer %q not found", answerID)
	}

	if !slices.Contains(q.Answers, answerID) {
		q.Answers = append(q.Answers, answerID)
	}
	if !slices.Contains(a.Questions, questionID) {
		a.Questions = append(a.Questions, questionID)
	}
	return s.save()
}

// Unlink removes the association from both sides and persists. Absent ids
// or an already-unlinked pair are not errors.
func (s *Store) Unlink(ctx context.Context, answerID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q, ok := s.doc.Questions[questionID]; ok {
		q.Answers = remove(q.Answers, answerID)
	}
	if a, ok := s.doc.Answers[answerID]; ok {
		a.Questions = remove(a.Questions, questionID)
	}
	return s.save()
}

func remove(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}

// FindQuestionByID retrieves a question by id.
func (s *Store) FindQuestionByID(ctx context.Context, id string) (*qalink.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.doc.Questions[id]
	if !ok {
		return nil, qalink.Errorf(qalink.ENOTFOUND, "question %q not found", id)
	}
	return questionFromRecord(id, rec), nil
}

// Questions retrieves all questions in ascending numeric id order.
func (s *Store) Questions(ctx context.Context) ([]*qalink.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.doc.QuestionIDs()
	questions := make([]*qalink.Question, 0, len(ids))
	for _, id := range ids {
		questions = append(questions, questionFromRecord(id, s.doc.Questions[id]))
	}
	return questions, nil
}

// AnswersForQuestion resolves the answers linked to a question, filtering
// out dangling ids and preserving stored order. Unknown question ids yield
// an empty list.
func (s *Store) AnswersForQuestion(ctx context.Context, questionID string) ([]qalink.AnswerRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := []qalink.AnswerRef{}
	q, ok := s.doc.Questions[questionID]
	if !ok {
		return refs, nil
	}
	for _, aid := range q.Answers {
		a, ok := s.doc.Answers[aid]
		if !ok {
			continue
		}
		refs = append(refs, qalink.AnswerRef{ID: aid, Text: a.Text})
	}
	return refs, nil
}

// QuestionsForAnswer resolves the questions linked to an answer, with the
// same dangling-id filtering and unknown-id behavior as
// AnswersForQuestion.
func (s *Store) QuestionsForAnswer(ctx context.Context, answerID string) ([]qalink.QuestionRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := []qalink.QuestionRef{}
	a, ok := s.doc.Answers[answerID]
	if !ok {
		return refs, nil
	}
	for _, qid := range a.Questions {
		q, ok := s.doc.Questions[qid]
		if !ok {
			continue
		}
		refs = append(refs, qalink.QuestionRef{ID: qid, Text: q.Text, Description: q.Description})
	}
	return refs, nil
}

// save writes the current document atomically. Callers must hold the write
// lock.
func (s *Store) save() error {
	return WriteDocument(s.path, s.doc)
}

func questionFromRecord(id string, rec *QuestionRecord) *qalink.Question {
	return &qalink.Question{
		ID:          id,
		Text:        rec.Text,
		Description: rec.Description,
		Answers:     slices.Clone(rec.Answers),
	}
}
