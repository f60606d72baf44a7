// Package batch translates large ordered collections of records across a
// bounded pool of goroutines.
//
// Inputs are split into contiguous chunks (16 records by default) that are
// handed to the pool in input order. Each record is translated on its own:
// an error, a panic or a timeout fails that record only. Results land in an
// index-tagged slot per record, so the surviving outputs come back in input
// order no matter which worker finished first. Failed records are dropped
// from the output but kept, with their error code, in [Result.Dropped].
//
// Cancelling the context aborts the whole batch; no partial result is
// returned.
package batch
