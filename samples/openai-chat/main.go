// Copyright (c) Microsoft. All rights reserved.

// Command openai-chat sends one prompt to the OpenAI API using the official
// OpenAI Go SDK.
//
//	export OPENAI_API_KEY=sk-...
//	export OPENAI_MODEL=gpt-4o-mini
//	go run .
package main

import "github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"

func main() {
	quickstart.Main(quickstart.OpenAIChat)
}
