package retrieval

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
)

// ErrNotFound is returned when a title is not present in the corpus.
var ErrNotFound = errors.New("title not found")

// Options configures Build.
type Options struct {
	MaxFeatures int
	Logger      *slog.Logger
}

// Neighbor is one ranked similarity result.
type Neighbor struct {
	Row   int
	Movie corpus.Movie
	Score float32
}

// Index holds the pairwise cosine similarity of every corpus movie. It is
// immutable after Build and safe for concurrent readers.
type Index struct {
	corpus    *corpus.Corpus
	n         int
	sims      []float32 // n*n, row major
	vocabSize int
}

// Build vectorizes every movie's combined features and computes the full
// similarity matrix. Memory grows with the square of the corpus size.
func Build(ctx context.Context, c *corpus.Corpus, opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	n := c.Len()
	docs := make([]string, n)
	for i := range n {
		docs[i] = c.Movie(i).CombinedFeatures
	}

	model, err := fitTFIDF(ctx, docs, opts.MaxFeatures)
	if err != nil {
		return nil, fmt.Errorf("fitting tf-idf: %w", err)
	}

	// postings[t] lists the documents containing term t with their weights.
	type posting struct {
		doc int32
		w   float32
	}
	postings := make([][]posting, len(model.vocab))
	for d, vec := range model.docs {
		for _, tw := range vec {
			postings[tw.term] = append(postings[tw.term], posting{doc: int32(d), w: tw.w})
		}
	}

	sims := make([]float32, n*n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := sims[i*n : (i+1)*n]
			for _, tw := range model.docs[i] {
				for _, p := range postings[tw.term] {
					if int(p.doc) > i {
						row[p.doc] += tw.w * p.w
					}
				}
			}
			// Each worker owns the upper triangle of its row and mirrors it
			// into the lower triangle, so the matrix is exactly symmetric.
			for j := i + 1; j < n; j++ {
				v := clamp(row[j])
				row[j] = v
				sims[j*n+i] = v
			}
			if len(model.docs[i]) > 0 {
				row[i] = 1
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing similarity matrix: %w", err)
	}

	elapsed := time.Since(start)
	indexBuildDuration.Observe(elapsed.Seconds())
	indexMovies.Set(float64(n))
	indexVocabulary.Set(float64(len(model.vocab)))
	logger.Info("similarity index built", "movies", n, "vocabulary", len(model.vocab), "duration", elapsed)

	return &Index{corpus: c, n: n, sims: sims, vocabSize: len(model.vocab)}, nil
}

func clamp(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Corpus returns the corpus the index was built over.
func (x *Index) Corpus() *corpus.Corpus { return x.corpus }

// VocabularySize returns the number of terms kept by the vectorizer.
func (x *Index) VocabularySize() int { return x.vocabSize }

// Similarity returns the cosine similarity between rows a and b.
func (x *Index) Similarity(a, b int) float32 {
	return x.sims[a*x.n+b]
}

// NearestNeighbors returns the topN movies most similar to title, best
// first. Equal scores keep corpus row order and the query movie itself is
// never included.
func (x *Index) NearestNeighbors(title string, topN int) ([]Neighbor, error) {
	row, ok := x.corpus.Lookup(title)
	if !ok {
		lookupsTotal.WithLabelValues("miss").Inc()
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	lookupsTotal.WithLabelValues("hit").Inc()
	if topN <= 0 {
		return nil, nil
	}

	scores := x.sims[row*x.n : (row+1)*x.n]
	h := &rankHeap{}
	for j, s := range scores {
		if j == row {
			continue
		}
		cand := ranked{row: j, score: s}
		if h.Len() < topN {
			heap.Push(h, cand)
		} else if cand.better((*h)[0]) {
			(*h)[0] = cand
			heap.Fix(h, 0)
		}
	}

	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		r := heap.Pop(h).(ranked)
		out[i] = Neighbor{Row: r.row, Movie: x.corpus.Movie(r.row), Score: r.score}
	}
	return out, nil
}
