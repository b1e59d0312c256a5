package searchstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

type batchRequest struct {
	Objects []Object `json:"objects"`
}

// successItems answers a batch request with one succeeded item per object.
func successItems(objects []Object) []map[string]interface{} {
	items := make([]map[string]interface{}, len(objects))
	for i, obj := range objects {
		items[i] = map[string]interface{}{
			"id":     obj.ID,
			"result": map[string]interface{}{"status": "SUCCESS"},
		}
	}
	return items
}

func TestInsertObjectPostsObject(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotQuery  string
		gotObject Object
	)
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotObject))
		w.Write([]byte(`{}`))
	})

	obj := Object{
		ID:         "5d9a72a6-0000-4000-8000-000000000007",
		Class:      "Article",
		Properties: map[string]interface{}{"title": "Go at scale"},
	}
	err := client.InsertObject(context.Background(), obj, &RequestOptions{Tenant: "acme", ConsistencyLevel: "ONE"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1/objects", gotPath)
	assert.Equal(t, "consistency_level=ONE&tenant=acme", gotQuery)
	assert.Equal(t, obj.ID, gotObject.ID)
	assert.Equal(t, "Article", gotObject.Class)
	assert.Equal(t, "Go at scale", gotObject.Properties["title"])
}

func TestInsertObjectGeneratesID(t *testing.T) {
	var gotObject Object
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotObject))
		w.Write([]byte(`{}`))
	})

	err := client.InsertObject(context.Background(), Object{Class: "Article"}, nil)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(gotObject.ID)
	assert.NoError(t, parseErr, "missing ids should be filled with a uuid, got %q", gotObject.ID)
}

func TestInsertObjectRequiresClass(t *testing.T) {
	var requests atomic.Int32
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	err := client.InsertObject(context.Background(), Object{}, nil)
	require.Error(t, err)

	assert.True(t, fault.IsValidation(err))
	assert.Zero(t, requests.Load())
}

func TestBatchInsertChunksObjects(t *testing.T) {
	var (
		mu         sync.Mutex
		chunkSizes []int
		seenIDs    []string
	)
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/batch/objects", r.URL.Path)

		var batch batchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch))

		mu.Lock()
		chunkSizes = append(chunkSizes, len(batch.Objects))
		for _, obj := range batch.Objects {
			seenIDs = append(seenIDs, obj.ID)
		}
		mu.Unlock()

		assert.NoError(t, json.NewEncoder(w).Encode(successItems(batch.Objects)))
	})
	client.cfg.BatchSize = 10

	objects := make([]Object, 25)
	for i := range objects {
		objects[i] = Object{Class: "Article", Properties: map[string]interface{}{"n": i}}
	}

	err := client.BatchInsert(context.Background(), objects, nil)
	require.NoError(t, err)

	sort.Ints(chunkSizes)
	assert.Equal(t, []int{5, 10, 10}, chunkSizes)

	assert.Len(t, seenIDs, 25)
	for _, id := range seenIDs {
		_, parseErr := uuid.Parse(id)
		assert.NoError(t, parseErr, "every object should carry a generated uuid")
	}
}

func TestBatchInsertHonorsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		current := inFlight.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)

		var batch batchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		assert.NoError(t, json.NewEncoder(w).Encode(successItems(batch.Objects)))
	})
	client.cfg.BatchSize = 1
	client.cfg.MaxConcurrentBatches = 2

	objects := make([]Object, 6)
	for i := range objects {
		objects[i] = Object{Class: "Article"}
	}

	err := client.BatchInsert(context.Background(), objects, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, peak.Load(), int32(2), "no more than MaxConcurrentBatches requests may run at once")
}

func TestBatchInsertReportsRejectedObject(t *testing.T) {
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var batch batchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch))

		items := successItems(batch.Objects)
		items[1] = map[string]interface{}{
			"id": batch.Objects[1].ID,
			"result": map[string]interface{}{
				"status": "FAILED",
				"errors": map[string]interface{}{
					"error": []map[string]interface{}{{"message": "invalid text property 'title'"}},
				},
			},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(items))
	})

	objects := []Object{
		{ID: "a1a1a1a1-0000-4000-8000-000000000001", Class: "Article"},
		{ID: "b2b2b2b2-0000-4000-8000-000000000002", Class: "Article"},
	}

	err := client.BatchInsert(context.Background(), objects, nil)
	require.Error(t, err)

	assert.True(t, fault.IsTransport(err))
	assert.Contains(t, err.Error(), "b2b2b2b2-0000-4000-8000-000000000002")
	assert.Contains(t, err.Error(), "invalid text property 'title'")
}

func TestBatchInsertEmptySliceIsNoop(t *testing.T) {
	var requests atomic.Int32
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	require.NoError(t, client.BatchInsert(context.Background(), nil, nil))
	assert.Zero(t, requests.Load())
}

func TestBatchInsertValidatesEveryClass(t *testing.T) {
	var requests atomic.Int32
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	objects := []Object{
		{Class: "Article"},
		{}, // missing class
	}

	err := client.BatchInsert(context.Background(), objects, nil)
	require.Error(t, err)

	assert.True(t, fault.IsValidation(err))
	assert.Contains(t, err.Error(), "object 1")
	assert.Zero(t, requests.Load(), "validation failures must not start any request")
}

func TestBatchInsertFailingChunkCancelsRemaining(t *testing.T) {
	var requests atomic.Int32
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"disk full"}`))
	})
	client.cfg.BatchSize = 2
	client.cfg.MaxConcurrentBatches = 1

	objects := make([]Object, 10)
	for i := range objects {
		objects[i] = Object{Class: "Article"}
	}

	err := client.BatchInsert(context.Background(), objects, nil)
	require.Error(t, err)

	assert.True(t, fault.IsTransport(err))
	assert.Less(t, requests.Load(), int32(5), "the first failure should stop later chunks")
}

func TestBatchInsertObservation(t *testing.T) {
	obs := &TestObserver{}
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var batch batchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		assert.NoError(t, json.NewEncoder(w).Encode(successItems(batch.Objects)))
	})
	client.WithObserver(obs)

	objects := []Object{{Class: "Article"}, {Class: "Article"}}
	require.NoError(t, client.BatchInsert(context.Background(), objects, nil))

	ops := obs.GetOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, "batch_insert", ops[0].Operation)
	assert.Equal(t, "Article", ops[0].Resource)
	assert.Equal(t, 2, ops[0].Metadata["objects"])
}

func TestBatchClassLabels(t *testing.T) {
	tests := []struct {
		name    string
		objects []Object
		want    string
	}{
		{"empty", nil, ""},
		{"homogeneous", []Object{{Class: "Article"}, {Class: "Article"}}, "Article"},
		{"mixed", []Object{{Class: "Article"}, {Class: "DocumentChunk"}}, "(mixed)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, batchClass(tt.objects))
		})
	}
}

func TestBatchInsertPreservesExplicitIDs(t *testing.T) {
	wantID := fmt.Sprintf("c3c3c3c3-0000-4000-8000-%012d", 9)

	var gotIDs []string
	client := newRESTTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var batch batchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		for _, obj := range batch.Objects {
			gotIDs = append(gotIDs, obj.ID)
		}
		assert.NoError(t, json.NewEncoder(w).Encode(successItems(batch.Objects)))
	})
	client.cfg.MaxConcurrentBatches = 1

	err := client.BatchInsert(context.Background(), []Object{{ID: wantID, Class: "Article"}}, nil)
	require.NoError(t, err)

	require.Len(t, gotIDs, 1)
	assert.Equal(t, wantID, gotIDs[0])
}
