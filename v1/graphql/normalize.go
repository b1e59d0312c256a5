package graphql

import (
	"bytes"
	"encoding/json"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

// Record is one normalized result object. Records are opaque key-value
// mappings; the service is schemaless from the client's perspective.
type Record map[string]any

type normalizeOptions struct {
	flattenAdditional bool
}

// NormalizeOption customizes response normalization.
type NormalizeOption func(*normalizeOptions)

// WithFlattenAdditional hoists the keys of each record's nested _additional
// object onto the record itself with a "_" prefix (_id, _distance, ...) and
// removes the nested object. A hoisted key never overwrites a schema field
// of the same name; on collision the schema field wins and the hoisted key
// is dropped.
func WithFlattenAdditional() NormalizeOption {
	return func(o *normalizeOptions) {
		o.flattenAdditional = true
	}
}

// Normalize extracts the record list for collection from a raw GraphQL
// response body.
//
// A non-empty top-level errors array is authoritative: it yields a
// *fault.GraphQLError carrying every reported message, and any data in the
// same response is ignored. Otherwise Normalize descends data -> Get ->
// collection and returns the array contents verbatim. A malformed body, a
// missing collection key, or a non-array payload is a serialization error,
// kept distinct from service-reported failure.
//
// Normalize is pure: it never mutates raw, and the same input always yields
// equal output.
func Normalize(raw []byte, collection string, opts ...NormalizeOption) ([]Record, error) {
	var options normalizeOptions
	for _, opt := range opts {
		opt(&options)
	}

	var envelope struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []fault.GraphQLErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fault.Serializationf("malformed response body: %v", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, detail := range envelope.Errors {
			messages[i] = detail.Message
		}
		return nil, &fault.GraphQLError{Messages: messages, Details: envelope.Errors}
	}

	getRaw, ok := envelope.Data["Get"]
	if !ok {
		return nil, fault.Serializationf("response has no Get payload")
	}
	var collections map[string]json.RawMessage
	if err := json.Unmarshal(getRaw, &collections); err != nil {
		return nil, fault.Serializationf("Get payload is not an object: %v", err)
	}
	recordsRaw, ok := collections[collection]
	if !ok {
		return nil, fault.Serializationf("response has no payload for collection %q", collection)
	}
	if string(bytes.TrimSpace(recordsRaw)) == "null" {
		return nil, fault.Serializationf("payload for collection %q is not an array", collection)
	}
	var records []Record
	if err := json.Unmarshal(recordsRaw, &records); err != nil {
		return nil, fault.Serializationf("payload for collection %q is not an array of objects: %v", collection, err)
	}

	if options.flattenAdditional {
		for _, record := range records {
			flattenAdditional(record)
		}
	}
	return records, nil
}

func flattenAdditional(record Record) {
	nested, ok := record["_additional"].(map[string]any)
	if !ok {
		return
	}
	delete(record, "_additional")
	for key, value := range nested {
		hoisted := "_" + key
		if _, exists := record[hoisted]; exists {
			continue
		}
		record[hoisted] = value
	}
}
