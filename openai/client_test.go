// Copyright (c) Microsoft. All rights reserved.

package openai_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
	"github.com/azure-ai-foundry/foundry-samples/go/openai"
)

// mockTransportFunc is a RoundTripper that delegates to a function.
type mockTransportFunc func(*http.Request) (*http.Response, error)

func (f mockTransportFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newMockHTTPClient(fn func(*http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{Transport: mockTransportFunc(fn)}
}

func jsonResponse(status int, body any) *http.Response {
	b, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func okResponse(content string) map[string]any {
	return map[string]any{
		"id": "chatcmpl-1", "model": "phi-4",
		"choices": []map[string]any{{
			"index": 0, "finish_reason": "stop",
			"message": map[string]any{"role": "assistant", "content": content},
		}},
	}
}

type staticCredential struct {
	token  string
	scopes []string
	err    error
}

func (c *staticCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.scopes = opts.Scopes
	if c.err != nil {
		return azcore.AccessToken{}, c.err
	}
	return azcore.AccessToken{Token: c.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestClient_Response_Basic(t *testing.T) {
	content := "Hello, I'm an AI assistant!"
	apiResp := map[string]any{
		"id":      "chatcmpl-123",
		"object":  "chat.completion",
		"created": 1718000000,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message": map[string]any{
				"role":    "assistant",
				"content": content,
			},
		}},
		"usage": map[string]any{
			"prompt_tokens":     10,
			"completion_tokens": 8,
			"total_tokens":      18,
		},
	}

	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost {
			t.Errorf("method = %q", req.Method)
		}
		if !strings.HasSuffix(req.URL.Path, "/chat/completions") {
			t.Errorf("path = %q", req.URL.Path)
		}
		if req.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("auth = %q", req.Header.Get("Authorization"))
		}

		body, _ := io.ReadAll(req.Body)
		var reqBody map[string]any
		_ = json.Unmarshal(body, &reqBody)
		if reqBody["model"] != "gpt-4o" {
			t.Errorf("request model = %v", reqBody["model"])
		}

		return jsonResponse(http.StatusOK, apiResp), nil
	})

	client := openai.New("test-key",
		openai.WithModel("gpt-4o"),
		openai.WithHTTPClient(httpClient),
	)

	resp, err := client.Response(context.Background(),
		[]foundry.Message{foundry.NewUserMessage("hi")},
		nil,
	)
	if err != nil {
		t.Fatalf("Response: %v", err)
	}

	if resp.ResponseID != "chatcmpl-123" {
		t.Errorf("ResponseID = %q", resp.ResponseID)
	}
	if resp.ModelID != "gpt-4o" {
		t.Errorf("ModelID = %q", resp.ModelID)
	}
	if resp.Created != 1718000000 {
		t.Errorf("Created = %d", resp.Created)
	}
	if resp.FinishReason() != foundry.FinishReasonStop {
		t.Errorf("FinishReason = %q", resp.FinishReason())
	}
	if resp.Usage.PromptTokens != 10 {
		t.Errorf("PromptTokens = %d", resp.Usage.PromptTokens)
	}
	if resp.Usage.CompletionTokens != 8 {
		t.Errorf("CompletionTokens = %d", resp.Usage.CompletionTokens)
	}
	if resp.Usage.TotalTokens != 18 {
		t.Errorf("TotalTokens = %d", resp.Usage.TotalTokens)
	}
	if resp.Text() != content {
		t.Errorf("Text = %q", resp.Text())
	}
}

func TestClient_Response_AllChoices(t *testing.T) {
	apiResp := map[string]any{
		"id": "chatcmpl-2", "model": "phi-4",
		"choices": []map[string]any{
			{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": "first"}},
			{"index": 1, "finish_reason": "length", "message": map[string]any{"role": "assistant", "content": "second"}},
		},
	}
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, apiResp), nil
	})

	client := openai.New("k", openai.WithHTTPClient(httpClient))
	resp, err := client.Response(context.Background(), []foundry.Message{foundry.NewUserMessage("hi")}, nil)
	if err != nil {
		t.Fatalf("Response: %v", err)
	}
	if len(resp.Choices) != 2 {
		t.Fatalf("choices = %d, want 2", len(resp.Choices))
	}
	if resp.Choices[1].Index != 1 || resp.Choices[1].Message.Content != "second" {
		t.Errorf("choice[1] = %+v", resp.Choices[1])
	}
	if resp.Choices[1].FinishReason != foundry.FinishReasonLength {
		t.Errorf("choice[1] finish = %q", resp.Choices[1].FinishReason)
	}
	if !resp.Usage.IsZero() {
		t.Errorf("usage = %+v, want zero", resp.Usage)
	}
}

func TestClient_AzureInference(t *testing.T) {
	endpoint := openai.InferenceEndpoint("https://res.services.ai.azure.com/models/", "deployments", "phi-4")

	var sentBody map[string]any
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		if got := req.URL.String(); got != "https://res.services.ai.azure.com/models/deployments/phi-4/chat/completions?api-version=2024-05-01-preview" {
			t.Errorf("url = %q", got)
		}
		if got := req.Header.Get("api-key"); got != "secret" {
			t.Errorf("api-key = %q", got)
		}
		if got := req.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &sentBody)
		return jsonResponse(http.StatusOK, okResponse("ok")), nil
	})

	client := openai.New("secret",
		openai.WithBaseURL(endpoint),
		openai.WithAPIKeyHeader(),
		openai.WithAPIVersion(openai.InferenceAPIVersion),
		openai.WithHTTPClient(httpClient),
	)

	_, err := client.Response(context.Background(),
		[]foundry.Message{
			foundry.NewSystemMessage("You are a helpful assistant."),
			foundry.NewUserMessage("How many feet are in a mile?"),
		},
		&foundry.ChatOptions{
			Temperature: foundry.Ptr(0.7),
			MaxTokens:   foundry.Ptr(800),
		},
	)
	if err != nil {
		t.Fatalf("Response: %v", err)
	}

	if sentBody["temperature"] != 0.7 {
		t.Errorf("temperature = %v", sentBody["temperature"])
	}
	if sentBody["max_tokens"] != float64(800) {
		t.Errorf("max_tokens = %v", sentBody["max_tokens"])
	}
	if _, ok := sentBody["model"]; ok {
		t.Errorf("model = %v, want omitted", sentBody["model"])
	}
	msgs, _ := sentBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", sentBody["messages"])
	}
	if m := msgs[0].(map[string]any); m["role"] != "system" {
		t.Errorf("messages[0].role = %v", m["role"])
	}
}

func TestClient_AzureCredential(t *testing.T) {
	cred := &staticCredential{token: "entra-token"}
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer entra-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := req.Header.Get("api-key"); got != "" {
			t.Errorf("api-key = %q, want empty", got)
		}
		return jsonResponse(http.StatusOK, okResponse("ok")), nil
	})

	client := openai.New("ignored",
		openai.WithAzureCredential(cred),
		openai.WithAPIKeyHeader(),
		openai.WithHTTPClient(httpClient),
	)
	if _, err := client.Response(context.Background(), []foundry.Message{foundry.NewUserMessage("hi")}, nil); err != nil {
		t.Fatalf("Response: %v", err)
	}
	if len(cred.scopes) != 1 || cred.scopes[0] != "https://cognitiveservices.azure.com/.default" {
		t.Errorf("scopes = %v", cred.scopes)
	}
}

func TestClient_AzureCredentialFailure(t *testing.T) {
	called := false
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, okResponse("ok")), nil
	})

	client := openai.New("",
		openai.WithAzureCredential(&staticCredential{err: errors.New("no identity")}),
		openai.WithTokenScope("https://ai.azure.com/.default"),
		openai.WithHTTPClient(httpClient),
	)
	_, err := client.Response(context.Background(), []foundry.Message{foundry.NewUserMessage("hi")}, nil)
	if !errors.Is(err, foundry.ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}
	if called {
		t.Error("request sent despite credential failure")
	}
}

func TestClient_Response_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     map[string]any
		sentinel error
		hint     string
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body: map[string]any{
				"error": map[string]any{"message": "Invalid API key", "type": "authentication_error"},
			},
			sentinel: foundry.ErrAuth,
			hint:     "Authentication failed. Check API key or Azure credentials.",
		},
		{
			name:   "deployment not found",
			status: http.StatusNotFound,
			body: map[string]any{
				"error": map[string]any{"message": "The API deployment for this resource does not exist.", "code": "DeploymentNotFound"},
			},
			sentinel: foundry.ErrNotFound,
			hint:     "Resource not found. Verify deployment name and endpoint.",
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body: map[string]any{
				"error": map[string]any{"message": "Requests have exceeded the call rate limit.", "code": "429"},
			},
			sentinel: foundry.ErrRateLimit,
			hint:     "Rate limit exceeded. Please retry later.",
		},
		{
			name:   "content filter",
			status: http.StatusBadRequest,
			body: map[string]any{
				"error": map[string]any{"message": "content filtered", "code": "content_filter"},
			},
			sentinel: foundry.ErrContentFilter,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tc.status, tc.body), nil
			})

			client := openai.New("bad-key",
				openai.WithModel("gpt-4o"),
				openai.WithHTTPClient(httpClient),
			)

			_, err := client.Response(context.Background(),
				[]foundry.Message{foundry.NewUserMessage("hi")},
				nil,
			)
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("err = %v, want %v", err, tc.sentinel)
			}
			if !errors.Is(err, foundry.ErrService) {
				t.Errorf("err = %v, want ErrService in chain", err)
			}
			var svcErr *foundry.ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatal("expected ServiceError")
			}
			if svcErr.StatusCode != tc.status {
				t.Errorf("StatusCode = %d", svcErr.StatusCode)
			}
			if svcErr.Hint() != tc.hint {
				t.Errorf("Hint = %q, want %q", svcErr.Hint(), tc.hint)
			}
		})
	}
}

func TestClient_Response_InvalidBody(t *testing.T) {
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("<html>gateway</html>")),
		}, nil
	})

	client := openai.New("k", openai.WithHTTPClient(httpClient))
	_, err := client.Response(context.Background(), []foundry.Message{foundry.NewUserMessage("hi")}, nil)
	if !errors.Is(err, foundry.ErrInvalidResponse) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestClient_StreamResponse(t *testing.T) {
	sseData := strings.Join([]string{
		`data: {"id":"chatcmpl-1","model":"gpt-4o","choices":[{"index":0,"delta":{"role":"assistant","content":"Hello"},"finish_reason":null}]}`,
		``,
		`: keep-alive`,
		``,
		`data: {"id":"chatcmpl-1","model":"gpt-4o","choices":[{"index":0,"delta":{"content":", world!"},"finish_reason":null}]}`,
		``,
		`data: {"id":"chatcmpl-1","model":"gpt-4o","choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
		``,
		`data: {"id":"chatcmpl-1","model":"gpt-4o","choices":[],"usage":{"prompt_tokens":5,"completion_tokens":3,"total_tokens":8}}`,
		``,
		`data: [DONE]`,
		``,
	}, "\n")

	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		var reqBody map[string]any
		_ = json.Unmarshal(body, &reqBody)
		if reqBody["stream"] != true {
			t.Errorf("stream = %v", reqBody["stream"])
		}
		if so, _ := reqBody["stream_options"].(map[string]any); so["include_usage"] != true {
			t.Errorf("stream_options = %v", reqBody["stream_options"])
		}

		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"text/event-stream"}},
			Body:       io.NopCloser(strings.NewReader(sseData)),
		}, nil
	})

	client := openai.New("test-key",
		openai.WithModel("gpt-4o"),
		openai.WithHTTPClient(httpClient),
	)

	stream, err := client.StreamResponse(context.Background(),
		[]foundry.Message{foundry.NewUserMessage("hi")},
		nil,
	)
	if err != nil {
		t.Fatalf("StreamResponse: %v", err)
	}
	defer stream.Close()

	updates, err := stream.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if len(updates) != 4 {
		t.Fatalf("updates = %d, want 4", len(updates))
	}
	if updates[0].Role != foundry.RoleAssistant {
		t.Errorf("[0].Role = %q", updates[0].Role)
	}
	if updates[0].Text != "Hello" {
		t.Errorf("[0].Text = %q", updates[0].Text)
	}
	if updates[1].Text != ", world!" {
		t.Errorf("[1].Text = %q", updates[1].Text)
	}
	if updates[3].Text != "" {
		t.Errorf("[3].Text = %q, want empty for usage-only chunk", updates[3].Text)
	}

	resp := foundry.ChatResponseFromUpdates(updates)
	if resp.Text() != "Hello, world!" {
		t.Errorf("merged text = %q", resp.Text())
	}
	if resp.Usage.TotalTokens != 8 {
		t.Errorf("merged usage = %+v", resp.Usage)
	}
}

func TestClient_StreamResponse_Error(t *testing.T) {
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"message": "Access denied due to invalid subscription key."},
		}), nil
	})

	client := openai.New("bad", openai.WithHTTPClient(httpClient))
	_, err := client.StreamResponse(context.Background(), []foundry.Message{foundry.NewUserMessage("hi")}, nil)
	if !errors.Is(err, foundry.ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}
}

func TestClient_StreamResponse_ErrorEvent(t *testing.T) {
	sseData := strings.Join([]string{
		`data: {"id":"chatcmpl-1","choices":[{"index":0,"delta":{"content":"Hel"}}]}`,
		``,
		`data: {"error":{"code":429,"message":"Too many tokens in flight."}}`,
		``,
		`data: [DONE]`,
		``,
	}, "\n")
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"text/event-stream"}},
			Body:       io.NopCloser(strings.NewReader(sseData)),
		}, nil
	})

	client := openai.New("test-key", openai.WithHTTPClient(httpClient))
	stream, err := client.StreamResponse(context.Background(), []foundry.Message{foundry.NewUserMessage("hi")}, nil)
	if err != nil {
		t.Fatalf("StreamResponse: %v", err)
	}
	defer stream.Close()

	updates, err := stream.Collect(context.Background())
	var svcErr *foundry.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want ServiceError", err)
	}
	if svcErr.Code != "429" || svcErr.Message != "Too many tokens in flight." {
		t.Errorf("service error = %+v", svcErr)
	}
	if len(updates) > 1 {
		t.Errorf("updates = %d, want the error event dropped", len(updates))
	}
}

func TestClient_WithOptions(t *testing.T) {
	var sentOrg, sentCustom string
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		sentOrg = req.Header.Get("OpenAI-Organization")
		sentCustom = req.Header.Get("x-ms-useragent")
		return jsonResponse(http.StatusOK, okResponse("ok")), nil
	})

	client := openai.New("test-key",
		openai.WithModel("gpt-4o"),
		openai.WithOrganization("org-abc"),
		openai.WithHeaders(map[string]string{"x-ms-useragent": "foundry-quickstart"}),
		openai.WithHTTPClient(httpClient),
	)

	_, err := client.Response(context.Background(),
		[]foundry.Message{foundry.NewUserMessage("hi")},
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	if sentOrg != "org-abc" {
		t.Errorf("org header = %q", sentOrg)
	}
	if sentCustom != "foundry-quickstart" {
		t.Errorf("custom header = %q", sentCustom)
	}
}

func TestClient_ChatOptions_PassedThrough(t *testing.T) {
	var sentBody map[string]any
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &sentBody)
		return jsonResponse(http.StatusOK, okResponse("ok")), nil
	})

	client := openai.New("test-key",
		openai.WithModel("gpt-4o"),
		openai.WithHTTPClient(httpClient),
	)

	_, err := client.Response(context.Background(),
		[]foundry.Message{foundry.NewUserMessage("hi")},
		&foundry.ChatOptions{
			ModelID:      "gpt-4o-mini",
			Temperature:  foundry.Ptr(0.3),
			Stop:         []string{"END"},
			Instructions: "Be brief.",
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	if sentBody["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", sentBody["model"])
	}
	if sentBody["temperature"] != 0.3 {
		t.Errorf("temperature = %v", sentBody["temperature"])
	}
	if _, ok := sentBody["max_tokens"]; ok {
		t.Errorf("max_tokens = %v, want omitted", sentBody["max_tokens"])
	}
	msgs, _ := sentBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", sentBody["messages"])
	}
	first := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "Be brief." {
		t.Errorf("messages[0] = %v", first)
	}
}

func TestClient_ChatMiddleware(t *testing.T) {
	httpClient := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, okResponse("ok")), nil
	})

	var order []string
	mw := func(name string) foundry.ChatMiddleware {
		return func(next foundry.ChatHandler) foundry.ChatHandler {
			return func(ctx context.Context, msgs []foundry.Message, opts *foundry.ChatOptions) (*foundry.ChatResponse, error) {
				order = append(order, name)
				return next(ctx, msgs, opts)
			}
		}
	}

	client := openai.New("k",
		openai.WithHTTPClient(httpClient),
		openai.WithChatMiddleware(mw("outer"), mw("inner")),
	)
	if _, err := client.Response(context.Background(), []foundry.Message{foundry.NewUserMessage("hi")}, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("order = %v", order)
	}
}
