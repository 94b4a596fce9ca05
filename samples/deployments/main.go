// Copyright (c) Microsoft. All rights reserved.

// Command deployments lists the model deployments of a Foundry project.
//
//	export PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	go run .
package main

import "github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"

func main() {
	quickstart.Main(quickstart.ListDeployments)
}
