// Package github provides normalisers for GitHub-specific content types.
//
// This package contains normalisers for:
//   - Issues (application/vnd.github.issue+json)
//   - Pull Requests (application/vnd.github.pull+json)
//
// These normalisers preserve authorship, labels, state, and comment history
// in a structured text format suitable for search and retrieval.
package github
