// Copyright (c) Microsoft. All rights reserved.

package foundry

// UsageDetails holds token consumption statistics for a model response.
type UsageDetails struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// IsZero reports whether no usage was reported.
func (u UsageDetails) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}
