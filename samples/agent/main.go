// Copyright (c) Microsoft. All rights reserved.

// Command agent creates an agent in an Azure AI Foundry project, runs one
// prompt on a new thread, prints the conversation and deletes what it made.
//
//	export PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	export MODEL_DEPLOYMENT_NAME=gpt-4o
//	go run .
//
// AGENT_NAME and AGENT_INSTRUCTIONS are optional. Authentication uses
// Microsoft Entra ID (az login or AZURE_CLIENT_ID/AZURE_CLIENT_SECRET).
package main

import "github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"

func main() {
	quickstart.Main(quickstart.Agent)
}
