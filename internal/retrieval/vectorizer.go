package retrieval

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"golang.org/x/sync/errgroup"
)

const analyzerName = "flickfusion_tfidf"

// DefaultMaxFeatures caps the vocabulary when Options.MaxFeatures is zero.
const DefaultMaxFeatures = 5000

// newAnalyzer returns a unicode word tokenizer followed by lowercasing and
// English stop word removal.
func newAnalyzer() (analysis.Analyzer, error) {
	im := mapping.NewIndexMapping()
	err := im.AddCustomAnalyzer(analyzerName, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name, en.StopName},
	})
	if err != nil {
		return nil, fmt.Errorf("registering analyzer: %w", err)
	}
	a := im.AnalyzerNamed(analyzerName)
	if a == nil {
		return nil, fmt.Errorf("analyzer %q not available", analyzerName)
	}
	return a, nil
}

// terms splits text into unigrams of at least two characters plus the
// bigrams of adjacent surviving unigrams.
func terms(a analysis.Analyzer, text string) []string {
	stream := a.Analyze([]byte(text))
	uni := make([]string, 0, len(stream))
	for _, tok := range stream {
		if utf8.RuneCount(tok.Term) < 2 {
			continue
		}
		uni = append(uni, string(tok.Term))
	}
	out := make([]string, 0, 2*len(uni))
	out = append(out, uni...)
	for i := 1; i < len(uni); i++ {
		out = append(out, uni[i-1]+" "+uni[i])
	}
	return out
}

// weight is one non-zero component of a sparse document vector.
type weight struct {
	term int32
	w    float32
}

// tfidf holds the fitted vocabulary and the L2-normalized document vectors.
type tfidf struct {
	vocab []string
	docs  [][]weight
}

// fitTFIDF tokenizes docs, keeps the maxFeatures most frequent terms across
// the collection (ties in alphabetical order), and weights them with smoothed
// inverse document frequency.
func fitTFIDF(ctx context.Context, docs []string, maxFeatures int) (*tfidf, error) {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	a, err := newAnalyzer()
	if err != nil {
		return nil, err
	}

	counts := make([]map[string]int, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, d := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := make(map[string]int)
			for _, t := range terms(a, d) {
				c[t]++
			}
			counts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := make(map[string]int)
	for _, c := range counts {
		for t, n := range c {
			total[t] += n
		}
	}
	vocab := make([]string, 0, len(total))
	for t := range total {
		vocab = append(vocab, t)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if total[vocab[i]] != total[vocab[j]] {
			return total[vocab[i]] > total[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > maxFeatures {
		vocab = vocab[:maxFeatures]
	}
	sort.Strings(vocab)
	index := make(map[string]int32, len(vocab))
	for i, t := range vocab {
		index[t] = int32(i)
	}

	df := make([]int, len(vocab))
	for _, c := range counts {
		for t := range c {
			if i, ok := index[t]; ok {
				df[i]++
			}
		}
	}
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	out := &tfidf{vocab: vocab, docs: make([][]weight, len(docs))}
	for di, c := range counts {
		ids := make([]int32, 0, len(c))
		for t := range c {
			if i, ok := index[t]; ok {
				ids = append(ids, i)
			}
		}
		sort.Slice(ids, func(x, y int) bool { return ids[x] < ids[y] })

		// Accumulate in term order so identical documents get identical vectors.
		raw := make([]float64, len(ids))
		var sq float64
		for k, i := range ids {
			raw[k] = float64(c[vocab[i]]) * idf[i]
			sq += raw[k] * raw[k]
		}
		vec := make([]weight, len(ids))
		inv := 0.0
		if sq > 0 {
			inv = 1 / math.Sqrt(sq)
		}
		for k, i := range ids {
			vec[k] = weight{term: i, w: float32(raw[k] * inv)}
		}
		out.docs[di] = vec
	}
	return out, nil
}
