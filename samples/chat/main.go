// Copyright (c) Microsoft. All rights reserved.

// Command chat sends one prompt to an Azure AI inference deployment and
// prints the response with token usage.
//
//	export AZURE_ENDPOINT=https://<resource>.services.ai.azure.com/models
//	export AZURE_MODEL_DEPLOYMENT_NAME=phi-4
//	export AZURE_AI_API_KEY=<key>   # optional, Entra ID is used without it
//	go run .
//
// CHAT_PROMPT overrides the default question. Set DEBUG=true for request logs.
package main

import "github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"

func main() {
	quickstart.Main(quickstart.Chat)
}
