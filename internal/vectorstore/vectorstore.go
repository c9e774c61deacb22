// Package vectorstore provides the vector index backends: a local vecgo
// snapshot produced by the offline ingestion pipeline, and a remote Qdrant
// collection for deployments where the index is hosted.
package vectorstore

import "errors"

// ErrIndexUnavailable signals that the prebuilt index could not be found or
// opened. Callers must treat this distinctly from an empty result set.
var ErrIndexUnavailable = errors.New("vector index unavailable")
