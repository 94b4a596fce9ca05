// Copyright (c) Microsoft. All rights reserved.

package foundry

import "context"

// ChatHandler is the function signature for processing a chat request.
type ChatHandler func(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error)

// ChatMiddleware wraps a [ChatHandler] to add cross-cutting behavior.
// Middleware should call next to continue the chain, or return early to short-circuit.
type ChatMiddleware func(next ChatHandler) ChatHandler

// ChainChatMiddleware applies middleware in order (first in list = outermost wrapper).
func ChainChatMiddleware(handler ChatHandler, mws ...ChatMiddleware) ChatHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}
