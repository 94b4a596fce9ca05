// Copyright (c) Microsoft. All rights reserved.

package openaiplatform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/tidwall/gjson"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

type clientConfig struct {
	requestOptions []option.RequestOption
	chatMiddleware []foundry.ChatMiddleware
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithBaseURL points the SDK at a different OpenAI-compatible host.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.requestOptions = append(c.requestOptions, option.WithBaseURL(url)) }
}

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.requestOptions = append(c.requestOptions, option.WithHTTPClient(client)) }
}

// WithMaxRetries overrides the SDK's retry budget.
func WithMaxRetries(n int) Option {
	return func(c *clientConfig) { c.requestOptions = append(c.requestOptions, option.WithMaxRetries(n)) }
}

// WithRequestOptions passes raw SDK request options through.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(c *clientConfig) { c.requestOptions = append(c.requestOptions, opts...) }
}

// WithChatMiddleware adds middleware to the chat pipeline.
func WithChatMiddleware(mw ...foundry.ChatMiddleware) Option {
	return func(c *clientConfig) { c.chatMiddleware = append(c.chatMiddleware, mw...) }
}

// Client implements [foundry.ChatClient] on top of openai-go.
type Client struct {
	sdk     openai.Client
	model   string
	handler foundry.ChatHandler
}

var _ foundry.ChatClient = (*Client)(nil)

// New creates a Client for model authenticated with apiKey.
func New(apiKey, model string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, cfg.requestOptions...)
	c := &Client{
		sdk:   openai.NewClient(reqOpts...),
		model: model,
	}
	c.handler = foundry.ChainChatMiddleware(c.coreResponse, cfg.chatMiddleware...)
	return c
}

// Response sends a chat completion request and returns the complete response.
func (c *Client) Response(ctx context.Context, messages []foundry.Message, opts *foundry.ChatOptions) (*foundry.ChatResponse, error) {
	return c.handler(ctx, messages, opts)
}

func (c *Client) coreResponse(ctx context.Context, messages []foundry.Message, opts *foundry.ChatOptions) (*foundry.ChatResponse, error) {
	params := c.buildParams(messages, opts)
	slog.DebugContext(ctx, "sending openai chat completion", "model", params.Model, "messages", len(params.Messages))

	completion, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, convertError(err)
	}
	return parseCompletion(completion), nil
}

// StreamResponse streams a chat completion. Middleware does not apply to
// streaming calls.
func (c *Client) StreamResponse(ctx context.Context, messages []foundry.Message, opts *foundry.ChatOptions) (*foundry.ResponseStream[foundry.ChatResponseUpdate], error) {
	params := c.buildParams(messages, opts)
	params.StreamOptions = openai.ChatCompletionStreamOptionsParam{IncludeUsage: openai.Bool(true)}

	slog.DebugContext(ctx, "sending openai streaming chat completion", "model", params.Model)
	sdkStream := c.sdk.Chat.Completions.NewStreaming(ctx, params)
	if err := sdkStream.Err(); err != nil {
		sdkStream.Close()
		return nil, convertError(err)
	}

	return foundry.NewResponseStream(ctx, func(ctx context.Context, ch chan<- foundry.ChatResponseUpdate) error {
		defer sdkStream.Close()
		for sdkStream.Next() {
			chunk := sdkStream.Current()
			select {
			case ch <- parseChunk(&chunk):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := sdkStream.Err(); err != nil {
			return convertError(err)
		}
		return nil
	}), nil
}

func (c *Client) buildParams(messages []foundry.Message, opts *foundry.ChatOptions) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
	}
	if opts != nil {
		if opts.ModelID != "" {
			params.Model = openai.ChatModel(opts.ModelID)
		}
		if opts.Temperature != nil {
			params.Temperature = openai.Float(*opts.Temperature)
		}
		if opts.TopP != nil {
			params.TopP = openai.Float(*opts.TopP)
		}
		if opts.MaxTokens != nil {
			params.MaxCompletionTokens = openai.Int(int64(*opts.MaxTokens))
		}
		if opts.Seed != nil {
			params.Seed = openai.Int(int64(*opts.Seed))
		}
		if opts.FrequencyPenalty != nil {
			params.FrequencyPenalty = openai.Float(*opts.FrequencyPenalty)
		}
		if opts.PresencePenalty != nil {
			params.PresencePenalty = openai.Float(*opts.PresencePenalty)
		}
		if len(opts.Stop) > 0 {
			params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: opts.Stop}
		}
		if opts.User != "" {
			params.User = openai.String(opts.User)
		}
		messages = foundry.PrependInstructions(messages, opts.Instructions)
	}

	for _, m := range messages {
		switch m.Role {
		case foundry.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case foundry.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}
	return params
}

func parseCompletion(completion *openai.ChatCompletion) *foundry.ChatResponse {
	resp := &foundry.ChatResponse{
		ResponseID: completion.ID,
		ModelID:    completion.Model,
		Created:    completion.Created,
		Usage: foundry.UsageDetails{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
		Raw: completion,
	}
	for _, ch := range completion.Choices {
		resp.Choices = append(resp.Choices, foundry.Choice{
			Index:        int(ch.Index),
			Message:      foundry.Message{Role: foundry.RoleAssistant, Content: ch.Message.Content},
			FinishReason: foundry.FinishReason(ch.FinishReason),
		})
	}
	return resp
}

func parseChunk(chunk *openai.ChatCompletionChunk) foundry.ChatResponseUpdate {
	update := foundry.ChatResponseUpdate{
		ResponseID: chunk.ID,
		ModelID:    chunk.Model,
		Usage: foundry.UsageDetails{
			PromptTokens:     int(chunk.Usage.PromptTokens),
			CompletionTokens: int(chunk.Usage.CompletionTokens),
			TotalTokens:      int(chunk.Usage.TotalTokens),
		},
		Raw: chunk,
	}
	if len(chunk.Choices) > 0 {
		c := chunk.Choices[0]
		update.Text = c.Delta.Content
		if c.Delta.Role != "" {
			update.Role = foundry.Role(c.Delta.Role)
		}
		if c.FinishReason != "" {
			update.FinishReason = foundry.FinishReason(c.FinishReason)
		}
	}
	return update
}

// streamErrorPrefix starts the error the SDK stream returns for an error
// event; the event's "error" object follows it.
const streamErrorPrefix = "received error while streaming: "

// convertError maps SDK API errors and stream error events to
// [foundry.ServiceError]; anything else is wrapped in [foundry.ErrService].
func convertError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return foundry.NewServiceError(apiErr.StatusCode, apiErr.Code, msg)
	}
	if raw, ok := strings.CutPrefix(err.Error(), streamErrorPrefix); ok && gjson.Valid(raw) {
		event := gjson.Parse(raw)
		msg := event.Get("message").String()
		if msg == "" {
			msg = raw
		}
		return foundry.NewServiceError(0, event.Get("code").String(), msg)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", foundry.ErrService, err)
}
