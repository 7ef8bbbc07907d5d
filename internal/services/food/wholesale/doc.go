// Package wholesale turns the AFCD "wholesale prices of major fresh food"
// CSV into language-specific price records.
//
// The package owns three steps: narrowing raw rows to a revision-date window,
// renaming the fixed bilingual column set into English or Chinese output
// keys, and the request-scoped operation that fetches, filters and projects.
// Fetching itself sits behind the Fetcher interface.
package wholesale
