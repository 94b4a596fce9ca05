// Copyright (c) Microsoft. All rights reserved.

package foundry

// ChatOptions configures a single chat completion request.
// Pointer fields use nil to represent "unset" (use the service default).
type ChatOptions struct {
	ModelID          string
	Temperature      *float64
	TopP             *float64
	MaxTokens        *int
	Stop             []string
	Seed             *int
	FrequencyPenalty *float64
	PresencePenalty  *float64
	User             string
	Instructions     string
	Metadata         map[string]string
}

// Ptr returns a pointer to v. It is a convenience for filling optional
// [ChatOptions] fields.
func Ptr[T any](v T) *T { return &v }

// MergeChatOptions produces a new ChatOptions by overlaying override values
// onto base. Nil or zero-value fields in override do not overwrite base.
// Metadata is merged (override keys win). Instructions are concatenated.
func MergeChatOptions(base, override *ChatOptions) *ChatOptions {
	if base == nil {
		if override == nil {
			return &ChatOptions{}
		}
		cp := *override
		return &cp
	}
	if override == nil {
		cp := *base
		return &cp
	}

	merged := *base

	if override.ModelID != "" {
		merged.ModelID = override.ModelID
	}
	if override.Temperature != nil {
		merged.Temperature = override.Temperature
	}
	if override.TopP != nil {
		merged.TopP = override.TopP
	}
	if override.MaxTokens != nil {
		merged.MaxTokens = override.MaxTokens
	}
	if len(override.Stop) > 0 {
		merged.Stop = override.Stop
	}
	if override.Seed != nil {
		merged.Seed = override.Seed
	}
	if override.FrequencyPenalty != nil {
		merged.FrequencyPenalty = override.FrequencyPenalty
	}
	if override.PresencePenalty != nil {
		merged.PresencePenalty = override.PresencePenalty
	}
	if override.User != "" {
		merged.User = override.User
	}

	if override.Instructions != "" {
		if merged.Instructions != "" {
			merged.Instructions += "\n" + override.Instructions
		} else {
			merged.Instructions = override.Instructions
		}
	}

	if len(override.Metadata) > 0 {
		md := make(map[string]string, len(merged.Metadata)+len(override.Metadata))
		for k, v := range merged.Metadata {
			md[k] = v
		}
		for k, v := range override.Metadata {
			md[k] = v
		}
		merged.Metadata = md
	}

	return &merged
}
