// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

const (
	defaultBaseURL    = "https://api.openai.com/v1"
	defaultTokenScope = "https://cognitiveservices.azure.com/.default"
)

// transport is an unexported interface for HTTP communication.
// The default implementation uses net/http; tests inject a mock.
type transport interface {
	do(ctx context.Context, method, path string, body any) (*http.Response, error)
}

// httpTransport is the default transport using net/http.
type httpTransport struct {
	client          *http.Client
	baseURL         string
	apiVersion      string
	apiKey          string
	apiKeyHeader    string
	org             string
	headers         map[string]string
	azureCredential azcore.TokenCredential
	tokenScope      string
}

func newHTTPTransport(apiKey string, opts *clientConfig) *httpTransport {
	t := &httpTransport{
		client:          opts.httpClient,
		baseURL:         opts.baseURL,
		apiVersion:      opts.apiVersion,
		apiKey:          apiKey,
		apiKeyHeader:    opts.apiKeyHeader,
		org:             opts.organization,
		headers:         opts.headers,
		azureCredential: opts.azureCredential,
		tokenScope:      opts.tokenScope,
	}
	if t.client == nil {
		t.client = http.DefaultClient
	}
	if t.baseURL == "" {
		t.baseURL = defaultBaseURL
	}
	if t.tokenScope == "" {
		t.tokenScope = defaultTokenScope
	}
	return t
}

func (t *httpTransport) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	target := t.baseURL + path
	if t.apiVersion != "" {
		target += "?" + url.Values{"api-version": {t.apiVersion}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	switch {
	case t.azureCredential != nil:
		slog.DebugContext(ctx, "acquiring Microsoft Entra token", "scope", t.tokenScope)
		token, err := t.azureCredential.GetToken(ctx, policy.TokenRequestOptions{
			Scopes: []string{t.tokenScope},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: get azure token: %v", foundry.ErrAuth, err)
		}
		slog.DebugContext(ctx, "using token authentication", "token_expires_on", token.ExpiresOn)
		req.Header.Set("Authorization", "Bearer "+token.Token)
	case t.apiKeyHeader != "":
		req.Header.Set(t.apiKeyHeader, t.apiKey)
	case t.apiKey != "":
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	if t.org != "" {
		req.Header.Set("OpenAI-Organization", t.org)
	}
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, parseErrorResponse(resp)
	}

	return resp, nil
}

// parseErrorResponse reads an error response body and returns a typed error.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    any    `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)

	msg := apiErr.Error.Message
	if msg == "" {
		msg = string(body)
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var code string
	if apiErr.Error.Code != nil {
		code = fmt.Sprint(apiErr.Error.Code)
	}

	return foundry.NewServiceError(resp.StatusCode, code, msg)
}
