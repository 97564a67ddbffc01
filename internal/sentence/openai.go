package sentence

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-subalign/internal/apierr"
)

// DefaultModel is the chat model used for sentence splitting.
// Splitting is a mechanical task; the cheap model is plenty.
const DefaultModel = "gpt-4o-mini"

// Default retry configuration.
const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
	defaultMaxDelay   = 30 * time.Second
)

// splitPrompt instructs the model to act as a pure segmenter.
const splitPrompt = `You split raw speech transcript text into natural sentences.

Rules:
- Output the sentences one per line, in the original order.
- Use only words from the input; do not correct, translate, or summarize.
- Every word of the input must appear in exactly one sentence.
- Do not number the lines or add any commentary.`

// chatCompleter is the subset of the OpenAI client the splitter uses.
// *openai.Client implements this implicitly; tests inject mocks.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ chatCompleter = (*openai.Client)(nil)
	_ Splitter      = (*OpenAISplitter)(nil)
)

// OpenAISplitter splits text into sentences using OpenAI's chat
// completion API, with exponential backoff on transient errors.
type OpenAISplitter struct {
	client     chatCompleter
	model      string
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// OpenAIOption configures an OpenAISplitter.
type OpenAIOption func(*OpenAISplitter)

// WithModel sets the chat model used for splitting.
func WithModel(model string) OpenAIOption {
	return func(s *OpenAISplitter) {
		if model != "" {
			s.model = model
		}
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(n int) OpenAIOption {
	return func(s *OpenAISplitter) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithRetryDelays sets the base and max delays for exponential backoff.
func WithRetryDelays(base, max time.Duration) OpenAIOption {
	return func(s *OpenAISplitter) {
		if base > 0 {
			s.baseDelay = base
		}
		if max > 0 {
			s.maxDelay = max
		}
	}
}

// NewOpenAISplitter creates an OpenAISplitter around client.
// The client is injected to enable testing with mocks.
func NewOpenAISplitter(client chatCompleter, opts ...OpenAIOption) *OpenAISplitter {
	s := &OpenAISplitter{
		client:     client,
		model:      DefaultModel,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the configured chat model identifier.
func (s *OpenAISplitter) Model() string {
	return s.model
}

// Split sends text to the chat API and parses one sentence per line
// from the response. Transient API errors are retried with backoff.
func (s *OpenAISplitter) Split(ctx context.Context, text string) ([]string, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0, // Deterministic segmentation for reproducibility
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: splitPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}

	cfg := apierr.RetryConfig{
		MaxRetries: s.maxRetries,
		BaseDelay:  s.baseDelay,
		MaxDelay:   s.maxDelay,
	}

	return apierr.RetryWithBackoff(ctx, cfg, func() ([]string, error) {
		resp, err := s.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, classifySplitError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("empty completion: %w", ErrNoSentences)
		}
		sentences := ParseSentences(resp.Choices[0].Message.Content)
		if len(sentences) == 0 {
			return nil, fmt.Errorf("unparseable completion: %w", ErrNoSentences)
		}
		return sentences, nil
	}, isRetryableSplitError)
}

// classifySplitError maps OpenAI API errors to apierr sentinels.
func classifySplitError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			// Quota exhaustion needs user action; rate limits pass.
			if strings.Contains(apiErr.Message, "quota") ||
				strings.Contains(apiErr.Message, "billing") {
				return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrQuotaExceeded)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrRateLimit)
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrAuthFailed)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrTimeout)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrTimeout) // Retryable server error
		case http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrBadRequest)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}

	return err
}

// isRetryableSplitError determines if an error is transient.
func isRetryableSplitError(err error) bool {
	if errors.Is(err, apierr.ErrRateLimit) || errors.Is(err, apierr.ErrTimeout) {
		return true
	}
	// Everything else (auth, quota, bad request, cancellation,
	// unusable completions) needs intervention, not patience.
	return false
}
