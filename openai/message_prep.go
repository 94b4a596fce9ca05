// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// chatRequest is the Chat Completions request body. Azure AI inference and
// Azure OpenAI both accept max_tokens, so that spelling is used.
type chatRequest struct {
	Model            string            `json:"model,omitempty"`
	Messages         []chatMessage     `json:"messages"`
	Temperature      *float64          `json:"temperature,omitempty"`
	TopP             *float64          `json:"top_p,omitempty"`
	MaxTokens        *int              `json:"max_tokens,omitempty"`
	Stop             []string          `json:"stop,omitempty"`
	Seed             *int              `json:"seed,omitempty"`
	FrequencyPenalty *float64          `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64          `json:"presence_penalty,omitempty"`
	User             string            `json:"user,omitempty"`
	Stream           bool              `json:"stream,omitempty"`
	StreamOptions    *streamOptions    `json:"stream_options,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// buildRequest converts foundry types into a Chat Completions request.
// Instructions from opts become a leading system message unless the caller
// already supplied one.
func buildRequest(messages []foundry.Message, opts *foundry.ChatOptions, defaultModel string) *chatRequest {
	req := &chatRequest{
		Model: defaultModel,
	}
	if opts != nil {
		if opts.ModelID != "" {
			req.Model = opts.ModelID
		}
		req.Temperature = opts.Temperature
		req.TopP = opts.TopP
		req.MaxTokens = opts.MaxTokens
		req.Stop = opts.Stop
		req.Seed = opts.Seed
		req.FrequencyPenalty = opts.FrequencyPenalty
		req.PresencePenalty = opts.PresencePenalty
		req.User = opts.User
		req.Metadata = opts.Metadata
		messages = foundry.PrependInstructions(messages, opts.Instructions)
	}

	req.Messages = convertMessages(messages)
	return req
}

func convertMessages(messages []foundry.Message) []chatMessage {
	result := make([]chatMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
			Name:    msg.AuthorName,
		})
	}
	return result
}
