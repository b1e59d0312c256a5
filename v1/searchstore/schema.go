package searchstore

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

const schemaPath = "/v1/schema"

// CollectionSpec describes one collection of the search store schema.
// Only the fields this client manages are modeled; the service accepts
// and returns more, which pass through untouched on reads.
type CollectionSpec struct {
	// Class is the collection name, e.g. "Article". Queries address
	// collections by this name.
	Class string `json:"class"`

	// Description documents the collection for schema readers.
	Description string `json:"description,omitempty"`

	// Vectorizer selects the module that computes object vectors,
	// e.g. "text2vec-contextionary" or "none" for client-side vectors.
	Vectorizer string `json:"vectorizer,omitempty"`

	// Properties are the typed fields of the collection.
	Properties []PropertySpec `json:"properties,omitempty"`
}

// PropertySpec describes one property of a collection.
type PropertySpec struct {
	// Name is the property name used in field lists and filter paths.
	Name string `json:"name"`

	// DataType holds the property type, e.g. ["text"] or ["int"].
	// Cross-references list the target collection instead.
	DataType []string `json:"dataType"`

	// Description documents the property.
	Description string `json:"description,omitempty"`
}

// EnsureCollection verifies that a collection exists and creates it if
// missing.
//
// It is safe to call multiple times; if the collection already exists,
// the function exits early. This simplifies startup logic for services
// that bootstrap their own collections.
func (c *Client) EnsureCollection(ctx context.Context, spec CollectionSpec) error {
	start := time.Now()

	err := c.ensureCollection(ctx, spec)

	c.observeOperation("ensure_collection", spec.Class, "", time.Since(start), err, 0, nil)
	return err
}

func (c *Client) ensureCollection(ctx context.Context, spec CollectionSpec) error {
	if spec.Class == "" {
		return fault.Validationf("collection name is required")
	}

	_, err := c.getCollection(ctx, spec.Class)
	if err == nil {
		if c.logger != nil {
			c.logger.Debug("collection already exists", nil, map[string]interface{}{
				"collection": spec.Class,
			})
		}
		return nil
	}
	if !IsNotFound(err) {
		return err
	}

	if err := c.doJSON(ctx, http.MethodPost, schemaPath, nil, spec, nil); err != nil {
		return err
	}

	if c.logger != nil {
		c.logger.Info("collection created", nil, map[string]interface{}{
			"collection": spec.Class,
		})
	}
	return nil
}

// GetCollection fetches the definition of one collection. The returned
// error matches ErrNotFound when the collection does not exist.
func (c *Client) GetCollection(ctx context.Context, name string) (*CollectionSpec, error) {
	start := time.Now()

	spec, err := c.getCollection(ctx, name)

	c.observeOperation("get_collection", name, "", time.Since(start), err, 0, nil)
	return spec, err
}

func (c *Client) getCollection(ctx context.Context, name string) (*CollectionSpec, error) {
	if name == "" {
		return nil, fault.Validationf("collection name is required")
	}

	var spec CollectionSpec
	if err := c.doJSON(ctx, http.MethodGet, schemaPath+"/"+url.PathEscape(name), nil, nil, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ListCollections fetches all collection definitions of the schema.
func (c *Client) ListCollections(ctx context.Context) ([]CollectionSpec, error) {
	start := time.Now()

	var schema struct {
		Classes []CollectionSpec `json:"classes"`
	}
	err := c.doJSON(ctx, http.MethodGet, schemaPath, nil, nil, &schema)

	c.observeOperation("list_collections", "", "", time.Since(start), err, 0, map[string]interface{}{
		"collections": len(schema.Classes),
	})

	if err != nil {
		return nil, err
	}
	return schema.Classes, nil
}

// DeleteCollection removes a collection and every object stored in it.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	start := time.Now()

	err := c.deleteCollection(ctx, name)

	c.observeOperation("delete_collection", name, "", time.Since(start), err, 0, nil)
	return err
}

func (c *Client) deleteCollection(ctx context.Context, name string) error {
	if name == "" {
		return fault.Validationf("collection name is required")
	}
	return c.doJSON(ctx, http.MethodDelete, schemaPath+"/"+url.PathEscape(name), nil, nil, nil)
}
