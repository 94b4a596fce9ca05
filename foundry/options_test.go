// Copyright (c) Microsoft. All rights reserved.

package foundry_test

import (
	"testing"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

func TestMergeChatOptions_NilBase(t *testing.T) {
	override := &foundry.ChatOptions{Temperature: foundry.Ptr(0.7), ModelID: "gpt-4o"}
	merged := foundry.MergeChatOptions(nil, override)

	if merged.ModelID != "gpt-4o" {
		t.Errorf("ModelID = %q", merged.ModelID)
	}
	if merged.Temperature == nil || *merged.Temperature != 0.7 {
		t.Errorf("Temperature = %v", merged.Temperature)
	}
}

func TestMergeChatOptions_BothNil(t *testing.T) {
	if merged := foundry.MergeChatOptions(nil, nil); merged == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestMergeChatOptions_OverrideWins(t *testing.T) {
	base := &foundry.ChatOptions{
		ModelID:     "base-model",
		Temperature: foundry.Ptr(0.5),
		MaxTokens:   foundry.Ptr(800),
		User:        "user1",
	}
	override := &foundry.ChatOptions{
		ModelID:     "override-model",
		Temperature: foundry.Ptr(0.9),
	}
	merged := foundry.MergeChatOptions(base, override)

	if merged.ModelID != "override-model" {
		t.Errorf("ModelID = %q, want override-model", merged.ModelID)
	}
	if *merged.Temperature != 0.9 {
		t.Errorf("Temperature = %f, want 0.9", *merged.Temperature)
	}
	if merged.MaxTokens == nil || *merged.MaxTokens != 800 {
		t.Errorf("MaxTokens = %v, want 800 (preserved from base)", merged.MaxTokens)
	}
	if merged.User != "user1" {
		t.Errorf("User = %q, want user1 (preserved from base)", merged.User)
	}
}

func TestMergeChatOptions_InstructionsConcatenate(t *testing.T) {
	merged := foundry.MergeChatOptions(
		&foundry.ChatOptions{Instructions: "Be helpful"},
		&foundry.ChatOptions{Instructions: "Be concise"},
	)

	if want := "Be helpful\nBe concise"; merged.Instructions != want {
		t.Errorf("Instructions = %q, want %q", merged.Instructions, want)
	}
}

func TestMergeChatOptions_MetadataDoesNotAliasBase(t *testing.T) {
	base := &foundry.ChatOptions{Metadata: map[string]string{"a": "1", "b": "2"}}
	override := &foundry.ChatOptions{Metadata: map[string]string{"b": "override", "c": "3"}}
	merged := foundry.MergeChatOptions(base, override)

	if merged.Metadata["a"] != "1" || merged.Metadata["b"] != "override" || merged.Metadata["c"] != "3" {
		t.Errorf("metadata = %v", merged.Metadata)
	}
	if base.Metadata["b"] != "2" {
		t.Errorf("base metadata mutated: %v", base.Metadata)
	}
}

func TestPrependInstructions(t *testing.T) {
	msgs := []foundry.Message{foundry.NewUserMessage("hi")}

	got := foundry.PrependInstructions(msgs, "Be brief")
	if len(got) != 2 || got[0].Role != foundry.RoleSystem || got[0].Content != "Be brief" {
		t.Errorf("got %+v", got)
	}

	withSystem := []foundry.Message{foundry.NewSystemMessage("existing"), foundry.NewUserMessage("hi")}
	if got := foundry.PrependInstructions(withSystem, "Be brief"); len(got) != 2 {
		t.Errorf("system message should not be duplicated: %+v", got)
	}

	if got := foundry.PrependInstructions(msgs, ""); len(got) != 1 {
		t.Errorf("empty instructions should be a no-op: %+v", got)
	}
}
