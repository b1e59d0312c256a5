// Package fault defines the error taxonomy shared by the query construction,
// rendering, and execution layers of the search store.
//
// Every error produced by this module falls into exactly one of four
// categories, each with a sentinel that works with errors.Is:
//
//   - ErrValidation: the query or filter is structurally invalid and was
//     rejected before anything was rendered or sent.
//   - ErrSerialization: a value cannot be represented in the query language,
//     or a response body does not have the expected shape.
//   - ErrGraphQL: the service executed the request and reported failure in
//     its errors array. Carried by *GraphQLError.
//   - ErrTransport: the request never produced a usable response. Carried by
//     *TransportError.
//
// # Usage
//
//	_, err := client.Query(ctx, query)
//	if fault.IsValidation(err) {
//	    // caller bug, fix the query
//	}
//	var gqlErr *fault.GraphQLError
//	if errors.As(err, &gqlErr) {
//	    for _, msg := range gqlErr.Messages {
//	        log.Printf("service rejected query: %s", msg)
//	    }
//	}
//
// Validation and serialization errors are final: retrying the same input
// yields the same error. GraphQL and transport errors describe the remote
// side and are candidates for caller-side retry policy.
package fault
