package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/qalink"
	"github.com/fwojciec/qalink/jsonfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *jsonfile.Store {
	t.Helper()
	store := jsonfile.NewStore(filepath.Join(t.TempDir(), "qa_store.json"))
	require.NoError(t, store.Open())
	return store
}

func TestStore_AddQuestion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assigns sequential ids", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		for i, want := range []string{"1", "2", "3"} {
			id, err := store.AddQuestion(ctx, "question")
			require.NoError(t, err, "add %d", i+1)
			assert.Equal(t, want, id)
		}
	})

	t.Run("stores text as initial description", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		id, err := store.AddQuestion(ctx, "Comment créer un logo ?")
		require.NoError(t, err)

		q, err := store.FindQuestionByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Comment créer un logo ?", q.Text)
		assert.Equal(t, "Comment créer un logo ?", q.Description)
		assert.Empty(t, q.Answers)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		_, err := store.AddQuestion(ctx, "")
		assert.Equal(t, qalink.EINVALID, qalink.ErrorCode(err))
	})
}

func TestStore_AddAnswer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("links to given questions", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		q1, err := store.AddQuestion(ctx, "first question")
		require.NoError(t, err)
		q2, err := store.AddQuestion(ctx, "second question")
		require.NoError(t, err)

		aid, err := store.AddAnswer(ctx, "shared answer", []string{q1, q2})
		require.NoError(t, err)
		assert.Equal(t, "1", aid)

		questions, err := store.QuestionsForAnswer(ctx, aid)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, q1, questions[0].ID)
		assert.Equal(t, q2, questions[1].ID)
	})

	t.Run("unknown question id", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		_, err := store.AddAnswer(ctx, "answer", []string{"99"})
		assert.Equal(t, qalink.ENOTFOUND, qalink.ErrorCode(err))
	})

	t.Run("answer ids are sequential per collection", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		_, err := store.AddQuestion(ctx, "question")
		require.NoError(t, err)

		a1, err := store.AddAnswer(ctx, "first", nil)
		require.NoError(t, err)
		a2, err := store.AddAnswer(ctx, "second", nil)
		require.NoError(t, err)
		assert.Equal(t, "1", a1)
		assert.Equal(t, "2", a2)
	})
}

func TestStore_Link(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("symmetric on both sides", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		qid, err := store.AddQuestion(ctx, "question")
		require.NoError(t, err)
		aid, err := store.AddAnswer(ctx, "answer", nil)
		require.NoError(t, err)

		require.NoError(t, store.Link(ctx, aid, qid))

		answers, err := store.AnswersForQuestion(ctx, qid)
		require.NoError(t, err)
		require.Len(t, answers, 1)
		assert.Equal(t, aid, answers[0].ID)

		questions, err := store.QuestionsForAnswer(ctx, aid)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, qid, questions[0].ID)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		qid, err := store.AddQuestion(ctx, "question")
		require.NoError(t, err)
		aid, err := store.AddAnswer(ctx, "answer", []string{qid})
		require.NoError(t, err)

		require.NoError(t, store.Link(ctx, aid, qid))

		answers, err := store.AnswersForQuestion(ctx, qid)
		require.NoError(t, err)
		assert.Len(t, answers, 1)

		questions, err := store.QuestionsForAnswer(ctx, aid)
		require.NoError(t, err)
		assert.Len(t, questions, 1)
	})

	t.Run("unknown ids", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		qid, err := store.AddQuestion(ctx, "question")
		require.NoError(t, err)
		aid, err := store.AddAnswer(ctx, "answer", nil)
		require.NoError(t, err)

		err = store.Link(ctx, aid, "99")
		assert.Equal(t, qalink.ENOTFOUND, qalink.ErrorCode(err))

		err = store.Link(ctx, "99", qid)
		assert.Equal(t, qalink.ENOTFOUND, qalink.ErrorCode(err))
	})
}

func TestStore_Unlink(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes both sides", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		qid, err := store.AddQuestion(ctx, "question")
		require.NoError(t, err)
		aid, err := store.AddAnswer(ctx, "answer", []string{qid})
		require.NoError(t, err)

		require.NoError(t, store.Unlink(ctx, aid, qid))

		answers, err := store.AnswersForQuestion(ctx, qid)
		require.NoError(t, err)
		assert.Empty(t, answers)

		questions, err := store.QuestionsForAnswer(ctx, aid)
		require.NoError(t, err)
		assert.Empty(t, questions)
	})

	t.Run("absent pair is not an error", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		assert.NoError(t, store.Unlink(ctx, "1", "1"))
	})

	t.Run("unlink then link restores symmetric state", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		qid, err := store.AddQuestion(ctx, "question")
		require.NoError(t, err)
		aid, err := store.AddAnswer(ctx, "answer", []string{qid})
		require.NoError(t, err)

		require.NoError(t, store.Unlink(ctx, aid, qid))
		require.NoError(t, store.Link(ctx, aid, qid))

		answers, err := store.AnswersForQuestion(ctx, qid)
		require.NoError(t, err)
		require.Len(t, answers, 1)
		assert.Equal(t, aid, answers[0].ID)

		questions, err := store.QuestionsForAnswer(ctx, aid)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, qid, questions[0].ID)
	})
}

func TestStore_Reads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown ids yield empty lists", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)

		answers, err := store.AnswersForQuestion(ctx, "99")
		require.NoError(t, err)
		assert.NotNil(t, answers)
		assert.Empty(t, answers)

		questions, err := store.QuestionsForAnswer(ctx, "99")
		require.NoError(t, err)
		assert.NotNil(t, questions)
		assert.Empty(t, questions)
	})

	t.Run("questions in ascending numeric id order", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		for i := 0; i < 11; i++ {
			_, err := store.AddQuestion(ctx, "question")
			require.NoError(t, err)
		}

		questions, err := store.Questions(ctx)
		require.NoError(t, err)
		require.Len(t, questions, 11)
		// "10" must sort after "9", not lexicographically.
		assert.Equal(t, "9", questions[8].ID)
		assert.Equal(t, "10", questions[9].ID)
		assert.Equal(t, "11", questions[10].ID)
	})

	t.Run("find question by id", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		_, err := store.FindQuestionByID(ctx, "1")
		assert.Equal(t, qalink.ENOTFOUND, qalink.ErrorCode(err))

		id, err := store.AddQuestion(ctx, "question")
		require.NoError(t, err)
		q, err := store.FindQuestionByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, q.ID)
	})
}

func TestStore_Persistence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("survives reopen", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "qa_store.json")
		store := jsonfile.NewStore(path)
		require.NoError(t, store.Open())

		qid, err := store.AddQuestion(ctx, "question")
		require.NoError(t, err)
		aid, err := store.AddAnswer(ctx, "answer", []string{qid})
		require.NoError(t, err)

		reopened := jsonfile.NewStore(path)
		require.NoError(t, reopened.Open())

		answers, err := reopened.AnswersForQuestion(ctx, qid)
		require.NoError(t, err)
		require.Len(t, answers, 1)
		assert.Equal(t, aid, answers[0].ID)
		assert.Equal(t, "answer", answers[0].Text)
	})

	t.Run("corrupt file starts empty without touching the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "qa_store.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		store := jsonfile.NewStore(path)
		require.NoError(t, store.Open())

		questions, err := store.Questions(ctx)
		require.NoError(t, err)
		assert.Empty(t, questions)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{not json", string(data))
	})

	t.Run("missing file starts empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "qa_store.json")
		store := jsonfile.NewStore(path)
		require.NoError(t, store.Open())

		questions, err := store.Questions(ctx)
		require.NoError(t, err)
		assert.Empty(t, questions)
		assert.NoFileExists(t, path)
	})

	t.Run("dangling ids are filtered from reads", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "qa_store.json")
		doc := jsonfile.NewDocument()
		doc.Questions["1"] = &jsonfile.QuestionRecord{
			Text:        "question",
			Description: "question",
			Answers:     []string{"9", "1"},
		}
		doc.Answers["1"] = &jsonfile.AnswerRecord{
			Text:      "answer",
			Questions: []string{"1", "7"},
		}
		require.NoError(t, jsonfile.WriteDocument(path, doc))

		store := jsonfile.NewStore(path)
		require.NoError(t, store.Open())

		answers, err := store.AnswersForQuestion(ctx, "1")
		require.NoError(t, err)
		require.Len(t, answers, 1)
		assert.Equal(t, "1", answers[0].ID)

		questions, err := store.QuestionsForAnswer(ctx, "1")
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "1", questions[0].ID)
	})
}
