package domain

import "context"

// Chunk is a stored fragment of case-document text. The JSON tags match the
// chunk store produced by the offline ingestion pipeline; element i of the
// chunk store corresponds to vector i in the prebuilt index.
type Chunk struct {
	ChunkID     string   `json:"chunk_id"`
	DocumentoID string   `json:"documento_id"`
	Archivo     string   `json:"archivo_original"`
	Tipo        string   `json:"tipo_documento"`
	Pagina      int      `json:"pagina"`
	Texto       string   `json:"texto"`
	Personas    []string `json:"personas_mencionadas"`
}

// ScoredChunk is a Chunk annotated with the similarity score returned by the
// vector index for a single query. It is never persisted.
type ScoredChunk struct {
	Chunk
	Score float32
}

// Hit is one raw search result from a vector index: the position of the
// matching vector and its similarity score, higher is more similar.
type Hit struct {
	Position int
	Score    float32
}

// CaseInfo is the static metadata of the case file, loaded once at startup.
type CaseInfo struct {
	Expediente string   `json:"expediente"`
	Defendido  string   `json:"defendido"`
	Juzgado    string   `json:"juzgado"`
	Juez       string   `json:"juez"`
	Fiscalia   string   `json:"fiscalia"`
	Delitos    []string `json:"delitos"`
	Imputacion string   `json:"imputacion"`
}

// Embedder converts free text into a dense vector representation using the
// same model and normalization the index was built with.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// VectorIndex performs nearest-neighbor search over a prebuilt index.
// Results are ordered by descending score; ties are broken arbitrarily.
type VectorIndex interface {
	Search(ctx context.Context, vector []float32, topK int) ([]Hit, error)
	Close() error
}

// ChatCompleter sends a composed prompt to a remote chat-completion model
// and returns the generated text.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Retriever maps a free-text query to a ranked list of annotated fragments.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]ScoredChunk, error)
}
