// Copyright (c) Microsoft. All rights reserved.

// Command project-chat chats with the Azure OpenAI deployment served by the
// resource behind a Foundry project endpoint.
//
//	export PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	export MODEL_DEPLOYMENT_NAME=gpt-4o
//	go run .
package main

import "github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"

func main() {
	quickstart.Main(quickstart.ProjectChat)
}
