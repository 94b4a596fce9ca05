// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// clientConfig holds resolved configuration for the client.
type clientConfig struct {
	baseURL         string
	apiVersion      string
	apiKeyHeader    string
	organization    string
	httpClient      *http.Client
	headers         map[string]string
	model           string
	azureCredential azcore.TokenCredential
	tokenScope      string
	chatMiddleware  []foundry.ChatMiddleware
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithBaseURL overrides the API base URL. Requests are sent to
// <base>/chat/completions.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithAPIVersion adds an api-version query parameter to every request, as
// Azure endpoints require.
func WithAPIVersion(version string) Option {
	return func(c *clientConfig) { c.apiVersion = version }
}

// WithAPIKeyHeader sends the API key in the Azure "api-key" header instead
// of an Authorization bearer header.
func WithAPIKeyHeader() Option {
	return func(c *clientConfig) { c.apiKeyHeader = "api-key" }
}

// WithOrganization sets the OpenAI organization header.
func WithOrganization(org string) Option {
	return func(c *clientConfig) { c.organization = org }
}

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) { c.headers = headers }
}

// WithModel sets the default model for requests. Azure deployment endpoints
// ignore it; the deployment in the URL selects the model.
func WithModel(model string) Option {
	return func(c *clientConfig) { c.model = model }
}

// WithAzureCredential enables Microsoft Entra ID token authentication using
// the provided credential. The API key is ignored when this is set.
func WithAzureCredential(cred azcore.TokenCredential) Option {
	return func(c *clientConfig) { c.azureCredential = cred }
}

// WithTokenScope overrides the scope requested from the Azure credential.
// Defaults to the Cognitive Services scope.
func WithTokenScope(scope string) Option {
	return func(c *clientConfig) { c.tokenScope = scope }
}

// WithChatMiddleware adds middleware to the chat pipeline.
// Middleware is applied in the order provided (first = outermost).
func WithChatMiddleware(mw ...foundry.ChatMiddleware) Option {
	return func(c *clientConfig) { c.chatMiddleware = append(c.chatMiddleware, mw...) }
}
