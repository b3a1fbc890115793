package modelrunner

import (
	"context"
	"errors"
	"net/http"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/domain"
)

// EmbeddingClientAdapter adapts the model runner embeddings endpoint to the
// domain EmbeddingProvider interface.
type EmbeddingClientAdapter struct {
	client DRMAPIClient
	model  string
}

// NewEmbeddingClientAdapter creates a new EmbeddingClientAdapter.
func NewEmbeddingClientAdapter(client DRMAPIClient, model string) EmbeddingClientAdapter {
	return EmbeddingClientAdapter{
		client: client,
		model:  model,
	}
}

// Embed generates the embedding vector for the given text.
func (e EmbeddingClientAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingVector, error) {
	resp, err := e.client.Embeddings(ctx, EmbeddingsRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return domain.EmbeddingVector{}, err
	}
	if len(resp.Data) == 0 {
		return domain.EmbeddingVector{}, errors.New("embeddings response contains no data")
	}

	return domain.EmbeddingVector{
		Vector:      resp.Data[0].Embedding,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

// InitEmbeddingClient initializes the embedding provider dependency
type InitEmbeddingClient struct {
	HttpClient *http.Client `resolve:""`
	ModelHost  string       `config:"LLM_MODEL_HOST"`
	Model      string       `config:"LLM_EMBEDDING_MODEL"`
	APIKey     string       `config:"LLM_API_KEY" default:""`
}

// Initialize registers the embedding provider
func (i InitEmbeddingClient) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.EmbeddingProvider](NewEmbeddingClientAdapter(
		NewDRMAPIClient(i.ModelHost, i.APIKey, i.HttpClient),
		i.Model,
	))
	return ctx, nil
}
