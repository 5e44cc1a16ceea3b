package search

import (
	"context"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/qalink"
)

// Thresholds for the embedding match policy.
const (
	// HighConfidence: a single match at or above this score wins alone,
	// unless a second match also clears it.
	HighConfidence = 0.7

	// MediumConfidence: matches at or above this score are returned as
	// candidates, capped at MaxCandidates.
	MediumConfidence = 0.5

	// MaxCandidates caps the medium-confidence candidate list.
	MaxCandidates = 3
)

// DefaultIndexConcurrency bounds concurrent embedding calls while building
// the index.
const DefaultIndexConcurrency = 4

// Compile-time interface verification.
var _ Strategy = (*EmbeddingStrategy)(nil)

type indexEntry struct {
	id     string
	vector []float32
}

// EmbeddingStrategy resolves fallback queries locally: every question's
// combined text and description is embedded once at construction time, and
// queries are matched by cosine similarity against that fixed index. Query
// embeddings are cached per distinct query string in a bounded LRU.
//
// The index is read-only after construction; picking up new questions
// requires building a new strategy.
type EmbeddingStrategy struct {
	embedder qalink.Embedder
	index    []indexEntry
	cache    *lru.Cache[uint64, []float32]
}

// NewEmbeddingStrategy builds the question index and returns the strategy.
// Embeddings are computed concurrently; any embedding failure fails
// construction.
func NewEmbeddingStrategy(ctx context.Context, embedder qalink.Embedder, store qalink.StoreService) (*EmbeddingStrategy, error) {
	questions, err := store.Questions(ctx)
	if err != nil {
		return nil, err
	}

	index := make([]indexEntry, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultIndexConcurrency)
	for i, q := range questions {
		g.Go(func() error {
			text := q.Text
			if q.Description != "" && q.Description != q.Text {
				text += "\n" + q.Description
			}
			vector, err := embedder.Embed(gctx, text)
			if err != nil {
				return err
			}
			index[i] = indexEntry{id: q.ID, vector: vector}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache, _ := lru.New[uint64, []float32](DefaultCacheSize)
	return &EmbeddingStrategy{embedder: embedder, index: index, cache: cache}, nil
}

// Match scores the query against every indexed question and applies the
// confidence policy: one high-confidence winner, else up to MaxCandidates
// medium-confidence candidates, else the single best match regardless of
// score. Only an empty index yields no candidates.
func (s *EmbeddingStrategy) Match(ctx context.Context, query string) ([]Match, error) {
	if len(s.index) == 0 {
		return nil, nil
	}

	vector, err := s.queryVector(ctx, query)
	if err != nil {
		return nil, err
	}

	scored := make([]Match, 0, len(s.index))
	for _, entry := range s.index {
		score := cosineSimilarity(vector, entry.vector)
		scored = append(scored, Match{QuestionID: entry.id, Score: &score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].Score > *scored[j].Score
	})

	best := scored[0]
	if *best.Score >= HighConfidence && (len(scored) == 1 || *scored[1].Score < HighConfidence) {
		return []Match{best}, nil
	}

	candidates := make([]Match, 0, MaxCandidates)
	for _, m := range scored {
		if *m.Score < MediumConfidence {
			break
		}
		candidates = append(candidates, m)
		if len(candidates) == MaxCandidates {
			break
		}
	}
	if len(candidates) > 0 {
		return candidates, nil
	}

	// Never return fewer than one candidate when at least one exists.
	return []Match{best}, nil
}

func (s *EmbeddingStrategy) queryVector(ctx context.Context, query string) ([]float32, error) {
	key := xxhash.Sum64String(query)
	if vector, ok := s.cache.Get(key); ok {
		return vector, nil
	}
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, vector)
	return vector, nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
