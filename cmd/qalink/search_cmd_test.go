package main_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/qalink"
	main "github.com/fwojciec/qalink/cmd/qalink"
	"github.com/fwojciec/qalink/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchStore() *mock.StoreService {
	questions := []*qalink.Question{
		{ID: "1", Text: "Comment créer un logo ?", Description: "Comment créer un logo ?"},
		{ID: "2", Text: "Comment changer mon mot de passe ?", Description: "Comment changer mon mot de passe ?"},
	}
	return &mock.StoreService{
		QuestionsFn: func(context.Context) ([]*qalink.Question, error) {
			return questions, nil
		},
		FindQuestionByIDFn: func(_ context.Context, id string) (*qalink.Question, error) {
			for _, q := range questions {
				if q.ID == id {
					return q, nil
				}
			}
			return nil, qalink.Errorf(qalink.ENOTFOUND, "question [%s] not found", id)
		},
		AnswersForQuestionFn: func(context.Context, string) ([]qalink.AnswerRef, error) {
			return []qalink.AnswerRef{}, nil
		},
	}
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints matches with ids", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(searchStore())

		err := (&main.SearchCmd{Query: "logo"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "[1] Comment créer un logo ?")
		assert.Contains(t, stdout.String(), "matched by substring")
	})

	t.Run("prints a message when nothing matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(searchStore())

		err := (&main.SearchCmd{Query: "facture"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No matching questions.")
	})

	t.Run("json output is a machine-readable array", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(searchStore())

		err := (&main.SearchCmd{Query: "2", JSON: true}).Run(deps)

		require.NoError(t, err)
		var results []qalink.SearchResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "2", results[0].ID)
	})
}
