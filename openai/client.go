// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// Client implements [foundry.ChatClient] against a Chat Completions
// endpoint. Use [New] to create one.
type Client struct {
	tp      transport
	model   string
	handler foundry.ChatHandler
}

var _ foundry.ChatClient = (*Client)(nil)

// New creates a [Client] with the given API key and options. The key may be
// empty when [WithAzureCredential] is used.
func New(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	c := &Client{
		tp:    newHTTPTransport(apiKey, cfg),
		model: cfg.model,
	}
	c.handler = foundry.ChainChatMiddleware(c.coreResponse, cfg.chatMiddleware...)
	return c
}

// Response sends a non-streaming chat completion request and returns the
// complete response.
func (c *Client) Response(ctx context.Context, messages []foundry.Message, opts *foundry.ChatOptions) (*foundry.ChatResponse, error) {
	return c.handler(ctx, messages, opts)
}

func (c *Client) coreResponse(ctx context.Context, messages []foundry.Message, opts *foundry.ChatOptions) (*foundry.ChatResponse, error) {
	req := buildRequest(messages, opts, c.model)

	slog.DebugContext(ctx, "sending chat completion", "model", req.Model, "messages", len(req.Messages))
	resp, err := c.tp.do(ctx, http.MethodPost, "/chat/completions", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", foundry.ErrService, err)
	}

	raw, err := unmarshalChatResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", foundry.ErrInvalidResponse, err)
	}

	result := parseChatResponse(raw)
	result.Raw = raw
	return result, nil
}

// StreamResponse sends a streaming chat completion request and returns a
// [foundry.ResponseStream] that yields incremental updates as server-sent
// events arrive. Middleware does not apply to streaming calls.
func (c *Client) StreamResponse(ctx context.Context, messages []foundry.Message, opts *foundry.ChatOptions) (*foundry.ResponseStream[foundry.ChatResponseUpdate], error) {
	req := buildRequest(messages, opts, c.model)
	req.Stream = true
	req.StreamOptions = &streamOptions{IncludeUsage: true}

	slog.DebugContext(ctx, "sending streaming chat completion", "model", req.Model, "messages", len(req.Messages))
	resp, err := c.tp.do(ctx, http.MethodPost, "/chat/completions", req)
	if err != nil {
		return nil, err
	}

	stream := foundry.NewResponseStream(ctx, func(ctx context.Context, ch chan<- foundry.ChatResponseUpdate) error {
		defer resp.Body.Close()
		return parseSSEStream(ctx, resp.Body, ch)
	})

	return stream, nil
}

// parseSSEStream reads server-sent events from r and sends parsed updates to
// ch. It returns when the stream is exhausted ([DONE]), the context is
// cancelled, or an error occurs.
func parseSSEStream(ctx context.Context, r io.Reader, ch chan<- foundry.ChatResponseUpdate) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return nil
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			slog.DebugContext(ctx, "skipping malformed stream chunk", "error", err)
			continue
		}
		if chunk.Error != nil {
			return chunk.Error.serviceError()
		}

		update := parseChunk(&chunk)
		update.Raw = &chunk

		select {
		case ch <- *update:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read SSE stream: %v", foundry.ErrService, err)
	}

	return nil
}
