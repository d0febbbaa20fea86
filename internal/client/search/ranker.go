// Package search ranks courses against a free-text prompt using text
// embeddings and cosine similarity.
package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"golang.org/x/sync/errgroup"
)

type InputType string

const (
	InputQuery    InputType = "search_query"
	InputDocument InputType = "search_document"
)

// Embedder turns texts into vectors, one per text, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string, inputType InputType) ([][]float64, error)
}

// Result is a course with its similarity to the prompt.
type Result struct {
	Course models.Course
	Score  float64
}

const (
	DefaultTopN      = 5
	defaultBatchSize = 32
	defaultWorkers   = 4
)

type Ranker struct {
	embedder  Embedder
	topN      int
	batchSize int
	workers   int
}

func NewRanker(e Embedder) *Ranker {
	return &Ranker{embedder: e, topN: DefaultTopN, batchSize: defaultBatchSize, workers: defaultWorkers}
}

// Rank returns up to five courses ordered by descending similarity. An empty
// prompt returns nil, meaning "no filter".
func (r *Ranker) Rank(ctx context.Context, prompt string, courses []models.Course) ([]Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" || len(courses) == 0 {
		return nil, nil
	}

	query, err := r.embedder.Embed(ctx, []string{prompt}, InputQuery)
	if err != nil {
		return nil, fmt.Errorf("embed prompt: %w", err)
	}
	if len(query) != 1 {
		return nil, errors.New("embed prompt: no vector returned")
	}

	docs, err := r.embedCourses(ctx, courses)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(courses))
	for i, c := range courses {
		results[i] = Result{Course: c, Score: Cosine(query[0], docs[i])}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if len(results) > r.topN {
		results = results[:r.topN]
	}
	return results, nil
}

// embedCourses embeds course texts in batches, several batches at a time.
func (r *Ranker) embedCourses(ctx context.Context, courses []models.Course) ([][]float64, error) {
	vectors := make([][]float64, len(courses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for start := 0; start < len(courses); start += r.batchSize {
		end := min(start+r.batchSize, len(courses))
		texts := make([]string, 0, end-start)
		for _, c := range courses[start:end] {
			text := c.SearchText()
			if text == "" {
				text = c.ID
			}
			texts = append(texts, text)
		}

		g.Go(func() error {
			got, err := r.embedder.Embed(gctx, texts, InputDocument)
			if err != nil {
				return fmt.Errorf("embed courses: %w", err)
			}
			if len(got) != len(texts) {
				return fmt.Errorf("embed courses: got %d vectors for %d texts", len(got), len(texts))
			}
			copy(vectors[start:end], got)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector or their lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
