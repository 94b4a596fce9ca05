// Copyright (c) Microsoft. All rights reserved.

// Command file-search uploads a sample document, indexes it in a vector
// store and asks a file_search agent about it. Everything created is deleted
// on exit, including after a failure.
//
//	export PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	export MODEL_DEPLOYMENT_NAME=gpt-4o
//	go run .
package main

import "github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"

func main() {
	quickstart.Main(quickstart.FileSearch)
}
