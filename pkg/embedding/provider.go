package embedding

// EmbeddingProvider turns text into a vector. taskType hints the model
// at the use case, "RETRIEVAL_DOCUMENT" when indexing chunks and
// "RETRIEVAL_QUERY" when searching them.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
