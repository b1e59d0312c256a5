package graphql

import (
	"strings"
	"testing"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
	"github.com/Aleph-Alpha/searchstore/v1/filters"
)

func TestNewQuery_BuilderIsImmutable(t *testing.T) {
	base := NewQuery("Article").WithFields("title")
	limited := base.WithLimit(5)

	baseDoc, err := base.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	limitedDoc, err := limited.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(baseDoc, "limit") {
		t.Errorf("base query must be unaffected by the branched call: %q", baseDoc)
	}
	if !strings.Contains(limitedDoc, "limit:5") {
		t.Errorf("expected limit:5 in %q", limitedDoc)
	}
}

func TestWithFields_AppendsAcrossCalls(t *testing.T) {
	q := NewQuery("Article").WithFields("title").WithFields("url", "views")

	doc, err := q.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, "{title url views") {
		t.Errorf("expected appended fields in order, got %q", doc)
	}
}

func TestWithFields_BranchesDoNotAlias(t *testing.T) {
	base := NewQuery("Article").WithFields("title")
	first := base.WithFields("url")
	second := base.WithFields("views")

	firstDoc, err := first.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secondDoc, err := second.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(firstDoc, "{title url}") {
		t.Errorf("first branch corrupted: %q", firstDoc)
	}
	if !strings.Contains(secondDoc, "{title views}") {
		t.Errorf("second branch corrupted: %q", secondDoc)
	}
}

func TestSearchMode_SecondDifferentModeIsRecorded(t *testing.T) {
	q := NewQuery("Article").
		WithFields("title").
		WithNearText(NearText{Concepts: []string{"ai"}}).
		WithNearVector(NearVector{Vector: []float32{0.1}})

	err := q.Validate()
	if err == nil {
		t.Fatal("expected validation error for conflicting search modes")
	}
	if !fault.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "search mode already set") {
		t.Errorf("unexpected message: %v", err)
	}

	if _, renderErr := q.Render(); renderErr == nil {
		t.Error("invalid query must not render")
	}
}

func TestSearchMode_SameModeReplacesParams(t *testing.T) {
	q := NewQuery("Article").
		WithFields("title").
		WithNearText(NearText{Concepts: []string{"old"}}).
		WithNearText(NearText{Concepts: []string{"new"}})

	doc, err := q.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc, "old") {
		t.Errorf("replaced mode params must not linger: %q", doc)
	}
	if !strings.Contains(doc, `concepts:["new"]`) {
		t.Errorf("expected replaced concepts, got %q", doc)
	}
}

func TestWithLimit_NegativeIsRecorded(t *testing.T) {
	q := NewQuery("Article").WithFields("title").WithLimit(-1)

	if !fault.IsValidation(q.Validate()) {
		t.Errorf("expected validation error, got %v", q.Validate())
	}
}

func TestWithOffset_NegativeIsRecorded(t *testing.T) {
	q := NewQuery("Article").WithFields("title").WithOffset(-7)

	if !fault.IsValidation(q.Validate()) {
		t.Errorf("expected validation error, got %v", q.Validate())
	}
}

func TestWithAfter_ExclusiveWithLimitAndOffset(t *testing.T) {
	base := NewQuery("Article").WithFields("title").WithAfter("cursor-1")

	if err := base.Validate(); err != nil {
		t.Fatalf("after alone must be valid: %v", err)
	}
	if err := base.WithLimit(10).Validate(); !fault.IsValidation(err) {
		t.Errorf("expected validation error for after+limit, got %v", err)
	}
	if err := base.WithOffset(10).Validate(); !fault.IsValidation(err) {
		t.Errorf("expected validation error for after+offset, got %v", err)
	}
}

func TestValidate_EmptyCollection(t *testing.T) {
	q := NewQuery("").WithFields("title")

	if !fault.IsValidation(q.Validate()) {
		t.Errorf("expected validation error, got %v", q.Validate())
	}
}

func TestValidate_NoFields(t *testing.T) {
	q := NewQuery("Article")

	err := q.Validate()
	if !fault.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "field") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidate_FilterErrorSurfaces(t *testing.T) {
	q := NewQuery("Article").WithFields("title").Where(filters.AllOf())

	if !fault.IsValidation(q.Validate()) {
		t.Errorf("expected the filter's validation error, got %v", q.Validate())
	}
}

func TestValidate_RawFragmentSkipsChecks(t *testing.T) {
	q := NewQuery("").WithRawFragment("Article{title}")

	if err := q.Validate(); err != nil {
		t.Errorf("raw fragment must bypass structural checks, got %v", err)
	}

	doc, err := q.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != "{Get{Article{title}}}" {
		t.Errorf("unexpected document: %q", doc)
	}
}

func TestValidate_RecordedErrorBeatsRawFragment(t *testing.T) {
	q := NewQuery("Article").WithLimit(-1).WithRawFragment("Article{title}")

	if !fault.IsValidation(q.Validate()) {
		t.Errorf("recorded builder errors must surface even with a raw fragment, got %v", q.Validate())
	}
}

func TestWithAdditional_UnionAcrossCalls(t *testing.T) {
	q := NewQuery("Article").
		WithFields("title").
		WithAdditional(AdditionalScore, AdditionalID).
		WithAdditional(AdditionalID, AdditionalDistance)

	doc, err := q.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// fixed enum order, duplicates collapsed
	if !strings.Contains(doc, "_additional{id distance score}") {
		t.Errorf("expected union in fixed order, got %q", doc)
	}
}

func TestWithAdditional_UnknownKeyIsRecorded(t *testing.T) {
	q := NewQuery("Article").WithFields("title").WithAdditional(Additional(99))

	if !fault.IsValidation(q.Validate()) {
		t.Errorf("expected validation error, got %v", q.Validate())
	}
}

func TestWithSort_LastCallWins(t *testing.T) {
	q := NewQuery("Article").
		WithFields("title").
		WithSort(Sort{Path: []string{"title"}}).
		WithSort(Sort{Path: []string{"publishedAt"}, Order: SortDesc})

	doc, err := q.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc, `path:["title"] order`) {
		t.Errorf("replaced sort must not linger: %q", doc)
	}
	if !strings.Contains(doc, `sort:[{path:["publishedAt"] order:desc}]`) {
		t.Errorf("expected last sort, got %q", doc)
	}
}

func TestWithSort_EmptyCallClears(t *testing.T) {
	q := NewQuery("Article").
		WithFields("title").
		WithSort(Sort{Path: []string{"title"}}).
		WithSort()

	doc, err := q.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc, "sort:") {
		t.Errorf("expected sort to be cleared, got %q", doc)
	}
}

func TestWithSort_EmptyPathIsRecorded(t *testing.T) {
	q := NewQuery("Article").WithFields("title").WithSort(Sort{})

	if !fault.IsValidation(q.Validate()) {
		t.Errorf("expected validation error, got %v", q.Validate())
	}
}

func TestErr_KeepsFirstError(t *testing.T) {
	q := NewQuery("Article").WithFields("title").WithLimit(-1).WithOffset(-2)

	err := q.Err()
	if err == nil {
		t.Fatal("expected recorded error")
	}
	if !strings.Contains(err.Error(), "limit") {
		t.Errorf("expected the first recorded error, got %v", err)
	}
}
