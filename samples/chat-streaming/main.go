// Copyright (c) Microsoft. All rights reserved.

// Command chat-streaming is the streaming variant of the chat sample: tokens
// are printed as they arrive.
//
//	export AZURE_ENDPOINT=https://<resource>.services.ai.azure.com/models
//	export AZURE_MODEL_DEPLOYMENT_NAME=phi-4
//	go run .
package main

import "github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"

func main() {
	quickstart.Main(quickstart.ChatStreaming)
}
