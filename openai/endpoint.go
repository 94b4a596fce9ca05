// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// API versions used by the Azure flavours of the Chat Completions API.
const (
	InferenceAPIVersion   = "2024-05-01-preview"
	AzureOpenAIAPIVersion = "2024-10-21"
)

// InferenceEndpoint builds the Azure AI inference URL for a deployment:
// <endpoint>/<apiPath>/<deployment>. Surrounding slashes on endpoint and
// apiPath are normalized.
func InferenceEndpoint(endpoint, apiPath, deployment string) string {
	base := strings.TrimRight(endpoint, "/")
	path := strings.Trim(apiPath, "/")
	if path == "" {
		return base + "/" + deployment
	}
	return base + "/" + path + "/" + deployment
}

// AzureOpenAIEndpoint returns the Azure OpenAI deployment URL served by the
// resource that hosts a Foundry project endpoint
// (https://<resource>.services.ai.azure.com/api/projects/<project>).
func AzureOpenAIEndpoint(projectEndpoint, deployment string) (string, error) {
	u, err := url.Parse(projectEndpoint)
	if err != nil {
		return "", fmt.Errorf("%w: parse endpoint %q: %v", foundry.ErrConfig, projectEndpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: endpoint %q is not an absolute URL", foundry.ErrConfig, projectEndpoint)
	}
	return u.Scheme + "://" + u.Host + "/openai/deployments/" + url.PathEscape(deployment), nil
}
