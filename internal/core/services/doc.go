// Package services implements the driving ports on top of the TF-IDF core.
//
// Scoring lives in internal/core/tfidf. Services load and persist the index
// through driven.IndexStore, cache query results per build and hand the best
// matches to a driven.AnswerGenerator.
package services
