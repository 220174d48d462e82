package openai

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultModel   = "text-embedding-3-small"
	requestTimeout = 60 * time.Second
)

// Embedder calls an OpenAI-compatible embeddings endpoint.
type Embedder struct {
	key    string
	model  string
	client openai.Client
}

// New builds a client for baseURL, normally the result of ResolveBaseURL.
// An empty baseURL targets the default provider.
func New(apiKey, model, baseURL string, opts ...option.RequestOption) *Embedder {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = providers[0].BaseURL
	}
	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL + "/"),
		option.WithMaxRetries(1),
	}
	clientOpts = append(clientOpts, opts...)
	return &Embedder{
		key:    apiKey,
		model:  model,
		client: openai.NewClient(clientOpts...),
	}
}

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := e.client.Embeddings.New(reqCtx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %s", truncate(redactSecrets(err.Error(), e.key), 500))
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	out := make([][]float32, len(data))
	for i, d := range data {
		v := make([]float32, len(d.Embedding))
		for k, x := range d.Embedding {
			v[k] = float32(x)
		}
		out[i] = v
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
