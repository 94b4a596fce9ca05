// Copyright (c) Microsoft. All rights reserved.

package foundry

import "strings"

// Choice is one candidate completion returned by the model.
type Choice struct {
	Index        int
	Message      Message
	FinishReason FinishReason
}

// ChatResponse is the complete (non-streaming) response from a [ChatClient].
type ChatResponse struct {
	Choices    []Choice
	ResponseID string
	ModelID    string
	Created    int64
	Usage      UsageDetails
	Raw        any
}

// Text returns the content of the first choice, or "" if there are no choices.
func (r *ChatResponse) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// FinishReason returns the finish reason of the first choice.
func (r *ChatResponse) FinishReason() FinishReason {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].FinishReason
}

// ChatResponseUpdate is a single chunk received during streaming from a
// [ChatClient]. Updates without choices (keep-alives, usage-only chunks)
// have an empty Text.
type ChatResponseUpdate struct {
	Text         string
	Role         Role
	ResponseID   string
	ModelID      string
	FinishReason FinishReason
	Usage        UsageDetails
	Raw          any
}

// ChatResponseFromUpdates builds a complete [ChatResponse] by merging
// a sequence of streaming updates.
func ChatResponseFromUpdates(updates []ChatResponseUpdate) *ChatResponse {
	resp := &ChatResponse{}
	var text strings.Builder
	role := RoleAssistant
	var finish FinishReason
	for _, u := range updates {
		text.WriteString(u.Text)
		if u.Role != "" {
			role = u.Role
		}
		if u.ResponseID != "" {
			resp.ResponseID = u.ResponseID
		}
		if u.ModelID != "" {
			resp.ModelID = u.ModelID
		}
		if u.FinishReason != "" {
			finish = u.FinishReason
		}
		if !u.Usage.IsZero() {
			resp.Usage = u.Usage
		}
	}
	if text.Len() > 0 || finish != "" {
		resp.Choices = []Choice{{
			Message:      Message{Role: role, Content: text.String()},
			FinishReason: finish,
		}}
	}
	return resp
}
