package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the embedding model used when none is configured.
const DefaultOpenAIModel = openai.SmallEmbedding3

// OpenAIEmbedder implements Embedder using the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates an embedder backed by the OpenAI API.
// Pass an empty model to use DefaultOpenAIModel.
func NewOpenAIEmbedder(apiKey string, model openai.EmbeddingModel) *OpenAIEmbedder {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIEmbedder{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewOpenAIEmbedderWithClient creates an embedder from an existing client.
// Useful for custom base URLs or instrumented HTTP transports.
func NewOpenAIEmbedderWithClient(client *openai.Client, model openai.EmbeddingModel) *OpenAIEmbedder {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIEmbedder{client: client, model: model}
}

// EmbedDocuments returns one embedding vector per input text, in order.
// Provider failures are wrapped in ErrUpstream.
func (e *OpenAIEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrUpstream, len(texts), len(resp.Data))
	}

	vectors := make([][]float64, len(resp.Data))
	for _, d := range resp.Data {
		vec := make([]float64, len(d.Embedding))
		for i, f := range d.Embedding {
			vec[i] = float64(f)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}

// EmbedQuery returns the embedding vector for a single query string.
func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: empty response for query", ErrUpstream)
	}
	return vectors[0], nil
}
