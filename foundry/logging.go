// Copyright (c) Microsoft. All rights reserved.

package foundry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// LoggingMiddleware returns a [ChatMiddleware] that writes one debug record
// before each chat request and one record after it. Failures are logged at
// warn level with the service status when one is available.
func LoggingMiddleware(logger *slog.Logger) ChatMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next ChatHandler) ChatHandler {
		return func(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error) {
			attrs := []any{"message_count", len(messages)}
			if opts != nil {
				if opts.Temperature != nil {
					attrs = append(attrs, "temperature", *opts.Temperature)
				}
				if opts.MaxTokens != nil {
					attrs = append(attrs, "max_tokens", *opts.MaxTokens)
				}
			}
			logger.DebugContext(ctx, "chat request started", attrs...)

			start := time.Now()
			resp, err := next(ctx, messages, opts)
			elapsed := time.Since(start).Round(time.Millisecond)
			if err != nil {
				fail := []any{"elapsed", elapsed, "error", err}
				var se *ServiceError
				if errors.As(err, &se) {
					fail = append(fail, "status", se.StatusCode)
				}
				logger.WarnContext(ctx, "chat request failed", fail...)
				return nil, err
			}

			logger.DebugContext(ctx, "chat request completed",
				"elapsed", elapsed,
				"model", resp.ModelID,
				"finish_reason", resp.FinishReason(),
				"prompt_tokens", resp.Usage.PromptTokens,
				"completion_tokens", resp.Usage.CompletionTokens,
				"total_tokens", resp.Usage.TotalTokens,
			)
			return resp, nil
		}
	}
}
