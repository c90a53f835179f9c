// Package memory contains in-process implementations of the repository interfaces.
//
// This package implements the ports defined in src/core/ports.
// State lives for the lifetime of the process and is never persisted.
//
// Every repository guards its state with a sync.RWMutex: gin serves requests
// concurrently, so read-modify-write sequences (ID assignment, find-then-splice)
// must happen under the write lock. Values are copied in and out so callers
// never share memory with the store.
//
// Example:
//
//	jokes := memory.NewJokeRepository(log)
//	j, err := jokes.Add(ctx, domain.Joke{Question: "Q", Answer: "A", Genre: "puns"})
package memory
