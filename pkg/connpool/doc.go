// Package connpool caches scoped database clients per connection descriptor.
//
// Every tenant's data lives in its own database, identified by a connection
// descriptor string. The Cache hands out one shared *pgxpool.Pool per
// descriptor, constructing it lazily on first use. Concurrent first-time
// acquisitions of the same descriptor are de-duplicated through an in-flight
// call map: exactly one construction runs, every waiter receives its result.
//
// Construction is bounded by a health-check timeout; a failed or timed-out
// construction is never cached. Entries idle beyond the configured timeout
// are closed and evicted by a background sweep. A client that breaks after
// being cached (detected through runtime errors in business code) must be
// removed with Purge so the next Acquire reconstructs it.
//
// The cache is an explicitly constructed service object with a shutdown
// lifecycle: build one per process, inject it into the request pipeline,
// and Close it on graceful shutdown to release every pooled client.
package connpool
