// Package hnsw provides CGO bindings for HNSWlib.
// It implements the driven.VectorIndex interface.
//
// Build requires:
//   - HNSWlib header (fetched via CMake FetchContent)
//   - C++17 compiler
package hnsw
