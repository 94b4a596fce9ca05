// Copyright (c) Microsoft. All rights reserved.

// Command create-project provisions an AI Services account and a Foundry
// project through Azure Resource Manager and prints the project endpoint.
//
//	export AZURE_SUBSCRIPTION_ID=<subscription>
//	export AZURE_RESOURCE_GROUP=<group>
//	export FOUNDRY_RESOURCE_NAME=<account>
//	export FOUNDRY_PROJECT_NAME=<project>
//	export AZURE_LOCATION=eastus   # optional
//	go run .
package main

import "github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"

func main() {
	quickstart.Main(quickstart.CreateProject)
}
