// Package tfidf implements the lexical vector space used by docask.
//
// Build fits a TermModel over a corpus and weights every document with
// raw term frequency times smoothed IDF, L2-normalised. Search transforms a
// query into the same space and ranks documents by cosine similarity.
//
// The package is pure: it has no I/O and no package-level mutable state.
// It may only import domain and the standard library.
package tfidf
