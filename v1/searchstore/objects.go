package searchstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

const (
	objectsPath = "/v1/objects"
	batchPath   = "/v1/batch/objects"
)

// Object is one storable record of a collection.
type Object struct {
	// ID is the object UUID. Left empty, the client generates one so
	// the write is addressable afterwards.
	ID string `json:"id,omitempty"`

	// Class names the collection the object belongs to.
	Class string `json:"class"`

	// Properties holds the schema fields of the object.
	Properties map[string]interface{} `json:"properties"`

	// Vector optionally carries a client-side embedding. Omitted, the
	// collection's vectorizer computes one.
	Vector []float32 `json:"vector,omitempty"`

	// Tenant assigns the object to a tenant of a multi-tenant
	// collection.
	Tenant string `json:"tenant,omitempty"`
}

// batchResponseItem is one entry of the batch endpoint's response. The
// service answers 200 even when individual objects were rejected, so
// each item carries its own status.
type batchResponseItem struct {
	ID     string `json:"id"`
	Result struct {
		Status string `json:"status"`
		Errors struct {
			Error []struct {
				Message string `json:"message"`
			} `json:"error"`
		} `json:"errors"`
	} `json:"result"`
}

const batchStatusFailed = "FAILED"

// InsertObject stores a single object. A missing ID is filled with a
// generated UUID so the caller can address the object afterwards.
func (c *Client) InsertObject(ctx context.Context, obj Object, opts *RequestOptions) error {
	start := time.Now()

	err := c.insertObject(ctx, obj, opts)

	c.observeOperation("insert_object", obj.Class, tenantOf(opts), time.Since(start), err, 0, nil)
	return err
}

func (c *Client) insertObject(ctx context.Context, obj Object, opts *RequestOptions) error {
	if obj.Class == "" {
		return fault.Validationf("object class is required")
	}
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}

	return c.doJSON(ctx, http.MethodPost, objectsPath, writeParams(opts), obj, nil)
}

// BatchInsert stores objects in chunks of Config.BatchSize, running at
// most Config.MaxConcurrentBatches chunk requests concurrently. The
// first failing chunk cancels the remaining ones and its error is
// returned.
//
// Objects rejected individually by the service also fail the batch;
// partial ingestion is reported, never silently accepted.
func (c *Client) BatchInsert(ctx context.Context, objects []Object, opts *RequestOptions) error {
	start := time.Now()

	err := c.batchInsert(ctx, objects, opts)

	c.observeOperation("batch_insert", batchClass(objects), tenantOf(opts), time.Since(start), err, 0, map[string]interface{}{
		"objects": len(objects),
	})
	return err
}

func (c *Client) batchInsert(ctx context.Context, objects []Object, opts *RequestOptions) error {
	if len(objects) == 0 {
		return nil
	}

	prepared := make([]Object, len(objects))
	for i, obj := range objects {
		if obj.Class == "" {
			return fault.Validationf("object %d has no class", i)
		}
		if obj.ID == "" {
			obj.ID = uuid.NewString()
		}
		prepared[i] = obj
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxConcurrentBatches)

	for startIdx := 0; startIdx < len(prepared); startIdx += c.cfg.BatchSize {
		endIdx := startIdx + c.cfg.BatchSize
		if endIdx > len(prepared) {
			endIdx = len(prepared)
		}
		chunk := prepared[startIdx:endIdx]

		g.Go(func() error {
			return c.insertChunk(ctx, chunk, opts)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if c.logger != nil {
		c.logger.Debug("batch insert completed", nil, map[string]interface{}{
			"objects": len(prepared),
			"batches": (len(prepared) + c.cfg.BatchSize - 1) / c.cfg.BatchSize,
		})
	}
	return nil
}

// insertChunk sends one chunk to the batch endpoint and checks the
// per-object results.
func (c *Client) insertChunk(ctx context.Context, chunk []Object, opts *RequestOptions) error {
	payload := struct {
		Objects []Object `json:"objects"`
	}{Objects: chunk}

	var results []batchResponseItem
	if err := c.doJSON(ctx, http.MethodPost, batchPath, writeParams(opts), payload, &results); err != nil {
		return err
	}

	for _, item := range results {
		if item.Result.Status != batchStatusFailed {
			continue
		}
		message := "rejected by the service"
		if len(item.Result.Errors.Error) > 0 {
			message = item.Result.Errors.Error[0].Message
		}
		return &fault.TransportError{Err: fmt.Errorf("batch object %s: %s", item.ID, message)}
	}

	return nil
}

// batchClass reports the collection of a homogeneous batch for
// observability; mixed batches are labeled as such.
func batchClass(objects []Object) string {
	if len(objects) == 0 {
		return ""
	}
	class := objects[0].Class
	for _, obj := range objects[1:] {
		if obj.Class != class {
			return "(mixed)"
		}
	}
	return class
}
