package graphql

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Aleph-Alpha/searchstore/v1/filters"
)

func TestRender_GoldenDocuments(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	certainty := 0.7
	objectCertainty := 0.8
	distance := 0.25
	alpha := 0.5

	cases := []struct {
		name  string
		query Query
	}{
		{
			"basic_fields",
			NewQuery("Article").WithFields("title", "url"),
		},
		{
			"near_text",
			NewQuery("Article").
				WithFields("title").
				WithNearText(NearText{
					Concepts:  []string{"ai", "machine learning"},
					Certainty: &certainty,
				}).
				WithLimit(5),
		},
		{
			"filtered_sorted",
			NewQuery("Article").
				WithFields("title", "url").
				Where(filters.AllOf(
					filters.Equal([]string{"status"}, "published"),
					filters.GreaterThan([]string{"views"}, 100),
				)).
				WithSort(Sort{Path: []string{"publishedAt"}, Order: SortDesc}).
				WithLimit(10).
				WithOffset(20),
		},
		{
			"hybrid_with_additional",
			NewQuery("Article").
				WithFields("title").
				WithHybrid(Hybrid{
					Query:      "vector search",
					Alpha:      &alpha,
					FusionType: FusionRelativeScore,
					Properties: []string{"title", "body"},
				}).
				WithAdditional(AdditionalScore, AdditionalID, AdditionalExplainScore),
		},
		{
			"near_vector",
			NewQuery("DocumentChunk").
				WithFields("chunk", "source").
				WithNearVector(NearVector{
					Vector:   []float32{0.1, 0.2, 0.3},
					Distance: &distance,
				}),
		},
		{
			"bm25",
			NewQuery("Article").
				WithFields("title").
				WithBM25(BM25{
					Query:      "golang indexing",
					Properties: []string{"title", "body"},
				}),
		},
		{
			"near_object_after",
			NewQuery("Article").
				WithFields("title").
				WithNearObject(NearObject{
					ID:        "e5dc4a4c-ef0f-3aed-89a3-a73435c6bbcf",
					Certainty: &objectCertainty,
				}).
				WithAfter("1f8d3a2e-0000-4000-8000-000000000001"),
		},
		{
			"raw_fragment",
			NewQuery("Article").
				WithRawFragment(`Article(limit:2){title _additional{id}}`),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			document, err := tc.query.Render()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			g.Assert(t, tc.name, []byte(document))
		})
	}
}

func TestRender_NoArgsOmitsParens(t *testing.T) {
	doc, err := NewQuery("Article").WithFields("title").Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != "{Get{Article{title}}}" {
		t.Errorf("unexpected document: %q", doc)
	}
}

func TestRender_NearTextWithLimit(t *testing.T) {
	certainty := 0.7
	doc, err := NewQuery("Article").
		WithFields("title").
		WithNearText(NearText{Concepts: []string{"ai"}, Certainty: &certainty}).
		WithLimit(5).
		Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{`concepts:["ai"]`, "certainty:0.7", "limit:5", "title"} {
		if !strings.Contains(doc, fragment) {
			t.Errorf("expected %q in %q", fragment, doc)
		}
	}
}

func TestRender_ArgumentOrderIsFixed(t *testing.T) {
	doc, err := NewQuery("Article").
		WithFields("title").
		WithLimit(3).
		Where(filters.Equal([]string{"lang"}, "en")).
		WithBM25(BM25{Query: "go"}).
		Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bm25Pos := strings.Index(doc, "bm25:")
	wherePos := strings.Index(doc, "where:")
	limitPos := strings.Index(doc, "limit:")
	if bm25Pos < 0 || wherePos < 0 || limitPos < 0 {
		t.Fatalf("missing arguments in %q", doc)
	}
	if !(bm25Pos < wherePos && wherePos < limitPos) {
		t.Errorf("arguments out of order in %q", doc)
	}
}

func TestRender_EscapesStrings(t *testing.T) {
	doc, err := NewQuery("Article").
		WithFields("title").
		WithBM25(BM25{Query: `say "hi"`}).
		Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, `bm25:{query:"say \"hi\""}`) {
		t.Errorf("expected escaped query string, got %q", doc)
	}
}

func TestRender_InvalidQueryProducesNoOutput(t *testing.T) {
	doc, err := NewQuery("Article").WithFields("title").WithLimit(-1).Render()
	if err == nil {
		t.Fatal("expected error")
	}
	if doc != "" {
		t.Errorf("invalid query must render nothing, got %q", doc)
	}
}

func TestRender_Deterministic(t *testing.T) {
	build := func() Query {
		certainty := 0.7
		return NewQuery("Article").
			WithFields("title", "url").
			WithNearText(NearText{Concepts: []string{"ai"}, Certainty: &certainty}).
			WithAdditional(AdditionalDistance, AdditionalID).
			WithLimit(5)
	}

	first, err := build().Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := build().Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("equal queries must render identically:\n%s\n%s", first, second)
	}
}
