// Package store provides a DynamoDB data-access layer with single-item and
// batch CRUD, secondary-index querying, automatic identifier generation and
// timestamp stamping.
//
// The layer never issues raw DynamoDB requests from calling code: every
// operation builds its request, enriches records where needed, invokes the
// injected client and normalizes failures onto a small error taxonomy.
//
// # Operations
//
//   - [Store.Get] / [Store.BatchGet]: single and bulk fetch
//   - [Store.QueryByIndex]: equality-conjunction query over a named index
//   - [Store.Create] / [Store.BatchCreate]: writes with id generation and
//     epoch-millisecond createdAt/updatedAt stamps
//   - [Store.Update]: partial attribute replace returning the full item
//   - [Store.AddItem] / [Store.AddItems]: write-only append path with
//     ISO-8601 stamps and no id generation
//
// # Errors
//
// Requested-but-absent items surface as [ErrNotFound]; malformed arguments
// are rejected before any network call and wrap [ErrValidation]; every other
// store failure is wrapped in a [ProviderError] carrying the original cause.
// Callers branch with errors.Is / errors.As, never by matching messages.
//
// # Concurrency
//
// A Store holds no mutable state beyond the long-lived client handle and is
// safe for any number of concurrent operations. Within one batch operation
// chunks are written sequentially to bound outstanding write pressure. No
// retries are performed at this layer; cancellation and timeouts belong to
// the caller's context.
package store
