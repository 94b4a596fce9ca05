// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"encoding/json"
	"fmt"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// chatCompletionResponse is the Chat Completions response body.
type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   *usage   `json:"usage,omitempty"`
}

type choice struct {
	Index        int         `json:"index"`
	Message      respMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type respMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (u *usage) details() foundry.UsageDetails {
	if u == nil {
		return foundry.UsageDetails{}
	}
	return foundry.UsageDetails{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

// chatCompletionChunk is a single SSE chunk in streaming mode.
type chatCompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []chunkChoice `json:"choices"`
	Usage   *usage        `json:"usage,omitempty"`
	Error   *chunkError   `json:"error,omitempty"`
}

// chunkError is an error event sent after the response has started.
type chunkError struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

func (e *chunkError) serviceError() error {
	var code string
	if e.Code != nil {
		code = fmt.Sprint(e.Code)
	}
	msg := e.Message
	if msg == "" {
		msg = "error event in stream"
	}
	return foundry.NewServiceError(0, code, msg)
}

type chunkChoice struct {
	Index        int        `json:"index"`
	Delta        chunkDelta `json:"delta"`
	FinishReason *string    `json:"finish_reason"`
}

type chunkDelta struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content,omitempty"`
}

// parseChatResponse converts the wire response into foundry types.
func parseChatResponse(raw *chatCompletionResponse) *foundry.ChatResponse {
	resp := &foundry.ChatResponse{
		ResponseID: raw.ID,
		ModelID:    raw.Model,
		Created:    raw.Created,
		Usage:      raw.Usage.details(),
	}

	for _, c := range raw.Choices {
		role := foundry.Role(c.Message.Role)
		if role == "" {
			role = foundry.RoleAssistant
		}
		var content string
		if c.Message.Content != nil {
			content = *c.Message.Content
		}
		resp.Choices = append(resp.Choices, foundry.Choice{
			Index:        c.Index,
			Message:      foundry.Message{Role: role, Content: content},
			FinishReason: mapFinishReason(c.FinishReason),
		})
	}

	return resp
}

// parseChunk converts a streaming chunk into a ChatResponseUpdate. Only the
// first choice is surfaced; the samples never request n > 1.
func parseChunk(chunk *chatCompletionChunk) *foundry.ChatResponseUpdate {
	update := &foundry.ChatResponseUpdate{
		ResponseID: chunk.ID,
		ModelID:    chunk.Model,
		Usage:      chunk.Usage.details(),
	}

	if len(chunk.Choices) > 0 {
		c := chunk.Choices[0]
		if c.Delta.Role != "" {
			update.Role = foundry.Role(c.Delta.Role)
		}
		if c.FinishReason != nil {
			update.FinishReason = mapFinishReason(*c.FinishReason)
		}
		if c.Delta.Content != nil {
			update.Text = *c.Delta.Content
		}
	}

	return update
}

func unmarshalChatResponse(data []byte) (*chatCompletionResponse, error) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func mapFinishReason(s string) foundry.FinishReason {
	switch s {
	case "stop":
		return foundry.FinishReasonStop
	case "length":
		return foundry.FinishReasonLength
	case "tool_calls":
		return foundry.FinishReasonToolCalls
	case "content_filter":
		return foundry.FinishReasonContentFilter
	default:
		return foundry.FinishReason(s)
	}
}
