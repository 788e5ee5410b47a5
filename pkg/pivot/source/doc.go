// Package source fetches pivot matrices from their backing stores.
//
// Three sources cover the deployment modes:
//
//   - [FileSource]: local JSON files, one per subject and category
//   - [HTTPSource]: the analytics endpoint, with response caching and retry
//   - [MongoSource]: a MongoDB collection populated by an upstream loader
//
// All sources return verified matrices and report missing pivots with a
// PIVOT_NOT_FOUND coded error. The pipeline treats sources uniformly
// through the [Source] interface; which one is wired up is a configuration
// concern.
package source
