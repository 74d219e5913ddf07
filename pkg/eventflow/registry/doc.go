// Package registry provides a thread-safe, insertion-ordered registry for
// values indexed by key.
//
// Registry is designed for read-heavy workloads using sync.RWMutex. Unlike a
// plain map, it remembers the order in which keys were first registered, so
// Keys and Range are deterministic. Re-registering an existing key replaces
// its value but keeps its original position.
//
// # Basic Usage
//
//	r := registry.New[string, int]()
//	r.Register("one", 1)
//	r.Register("two", 2)
//	r.Register("one", 10)
//
//	r.Keys() // ["one", "two"]
//	v, _ := r.Get("one") // 10
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Range iterates over a
// snapshot, so Register and Delete may be called from inside the callback
// without affecting the current iteration.
package registry
