// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - hnsw: HNSWlib bindings for vector similarity search
//   - xapian: Xapian bindings for full-text search
package cgo
