// Copyright (c) Microsoft. All rights reserved.

// Package openai provides a [foundry.ChatClient] for OpenAI-compatible Chat
// Completions endpoints: Azure AI inference deployments, Azure OpenAI
// deployments in a Foundry resource, and the OpenAI API itself.
//
// Azure AI inference with an API key:
//
//	endpoint := openai.InferenceEndpoint(projectEndpoint, "deployments", "phi-4")
//	client := openai.New(apiKey,
//	    openai.WithBaseURL(endpoint),
//	    openai.WithAPIKeyHeader(),
//	    openai.WithAPIVersion(openai.InferenceAPIVersion),
//	)
//
// Microsoft Entra ID authentication:
//
//	client := openai.New("",
//	    openai.WithBaseURL(endpoint),
//	    openai.WithAzureCredential(cred),
//	)
//
// # Configuration
//
// Use functional options to configure the client:
//
//   - [WithModel]: set the default model
//   - [WithBaseURL]: override the API endpoint
//   - [WithAPIVersion]: add an api-version query parameter to every request
//   - [WithAPIKeyHeader]: send the key in the Azure "api-key" header
//   - [WithAzureCredential], [WithTokenScope]: bearer tokens from azcore
//   - [WithHTTPClient]: provide a custom http.Client
//   - [WithHeaders]: add custom headers to every request
//   - [WithChatMiddleware]: wrap the request pipeline
//
// # Testing
//
// The client uses an unexported transport interface internally.
// For testing, provide a mock http.Client via [WithHTTPClient]
// with a custom RoundTripper.
package openai
