package recommend

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
)

// searchPageSize is how many hits are fetched per request. Every match is
// collected, so this only bounds the size of one bleve result set.
const searchPageSize = 500

type searchDoc struct {
	Title    string `json:"title"`
	Overview string `json:"overview"`
}

// searchIndex is an in-memory bleve index over titles and overviews.
// Document IDs are corpus row numbers.
type searchIndex struct {
	index bleve.Index
}

func buildMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = en.AnalyzerName

	doc := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = en.AnalyzerName
	doc.AddFieldMappingsAt("title", title)

	overview := bleve.NewTextFieldMapping()
	overview.Analyzer = en.AnalyzerName
	doc.AddFieldMappingsAt("overview", overview)

	im.DefaultMapping = doc
	return im
}

func newSearchIndex(ctx context.Context, movies []corpus.Movie) (*searchIndex, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	const batchSize = 500
	batch := idx.NewBatch()
	for i, m := range movies {
		if err := batch.Index(strconv.Itoa(i), searchDoc{Title: m.Title, Overview: m.Overview}); err != nil {
			idx.Close()
			return nil, fmt.Errorf("indexing %q: %w", m.Title, err)
		}
		if batch.Size() >= batchSize {
			if err := ctx.Err(); err != nil {
				idx.Close()
				return nil, err
			}
			if err := idx.Batch(batch); err != nil {
				idx.Close()
				return nil, fmt.Errorf("applying batch: %w", err)
			}
			batch = idx.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := idx.Batch(batch); err != nil {
			idx.Close()
			return nil, fmt.Errorf("applying batch: %w", err)
		}
	}
	return &searchIndex{index: idx}, nil
}

// match returns every row whose title or overview contains all terms of
// text. Relevance is not kept; callers rank by rating.
func (s *searchIndex) match(ctx context.Context, text string) ([]int, error) {
	titleQ := bleve.NewMatchQuery(text)
	titleQ.SetField("title")
	titleQ.SetOperator(query.MatchQueryOperatorAnd)
	titleQ.SetBoost(2.0)

	overviewQ := bleve.NewMatchQuery(text)
	overviewQ.SetField("overview")
	overviewQ.SetOperator(query.MatchQueryOperatorAnd)

	q := bleve.NewDisjunctionQuery(titleQ, overviewQ)

	var rows []int
	for from := 0; ; from += searchPageSize {
		req := bleve.NewSearchRequestOptions(q, searchPageSize, from, false)
		// Pages must be stable across requests; scores tie too often.
		req.SortBy([]string{"_id"})
		res, err := s.index.SearchInContext(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("searching %q: %w", text, err)
		}
		for _, h := range res.Hits {
			row, err := strconv.Atoi(h.ID)
			if err != nil {
				continue
			}
			rows = append(rows, row)
		}
		if len(res.Hits) < searchPageSize || uint64(from+len(res.Hits)) >= res.Total {
			break
		}
	}
	// Back to corpus order so equal ratings tie-break by row.
	slices.Sort(rows)
	return slices.Compact(rows), nil
}

func (s *searchIndex) close() error {
	return s.index.Close()
}
