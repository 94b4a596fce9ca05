// Copyright (c) Microsoft. All rights reserved.

package projects

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/azure-ai-foundry/foundry-samples/go/credential"
	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
	"github.com/azure-ai-foundry/foundry-samples/go/internal/azerr"
	"github.com/azure-ai-foundry/foundry-samples/go/openai"
)

const (
	moduleName    = "projects"
	moduleVersion = "v0.1.0"

	// DefaultAPIVersion is the project data-plane API version.
	DefaultAPIVersion = "v1"

	tokenScope     = "https://ai.azure.com/.default"
	chatTokenScope = "https://cognitiveservices.azure.com/.default"
)

// ClientOptions contains optional settings for [Client].
type ClientOptions struct {
	azcore.ClientOptions

	// APIVersion overrides DefaultAPIVersion.
	APIVersion string

	// Logger receives request and polling progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is bound to one Foundry project endpoint.
type Client struct {
	endpoint   string
	apiVersion string
	pl         runtime.Pipeline
	options    policy.ClientOptions
	token      azcore.TokenCredential
	key        *azcore.KeyCredential
	logger     *slog.Logger
}

// NewClient creates a Client that authenticates with Microsoft Entra tokens.
func NewClient(endpoint string, cred azcore.TokenCredential, options *ClientOptions) (*Client, error) {
	if cred == nil {
		return nil, fmt.Errorf("%w: token credential is nil", foundry.ErrConfig)
	}
	c, err := newClient(endpoint, options)
	if err != nil {
		return nil, err
	}
	c.token = cred
	c.pl = c.pipeline(runtime.NewBearerTokenPolicy(cred, []string{tokenScope}, nil))
	return c, nil
}

// NewClientWithKey creates a Client that sends key in the api-key header.
func NewClientWithKey(endpoint string, key *azcore.KeyCredential, options *ClientOptions) (*Client, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: key credential is nil", foundry.ErrConfig)
	}
	c, err := newClient(endpoint, options)
	if err != nil {
		return nil, err
	}
	c.key = key
	c.pl = c.pipeline(runtime.NewKeyCredentialPolicy(key, "api-key", nil))
	return c, nil
}

// NewClientFromCredential creates a Client for whichever credential the
// provider selected.
func NewClientFromCredential(endpoint string, cred *credential.Credential, options *ClientOptions) (*Client, error) {
	if cred != nil && cred.Kind == credential.KindKey {
		return NewClientWithKey(endpoint, cred.Key, options)
	}
	if cred == nil {
		return nil, fmt.Errorf("%w: credential is nil", foundry.ErrConfig)
	}
	return NewClient(endpoint, cred.Token, options)
}

func newClient(endpoint string, options *ClientOptions) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: project endpoint %q is not an absolute URL", foundry.ErrConfig, endpoint)
	}
	if options == nil {
		options = &ClientOptions{}
	}
	c := &Client{
		endpoint:   endpoint,
		apiVersion: options.APIVersion,
		options:    options.ClientOptions,
		logger:     options.Logger,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.apiVersion == "" {
		c.apiVersion = DefaultAPIVersion
	}
	return c, nil
}

func (c *Client) pipeline(auth policy.Policy) runtime.Pipeline {
	return runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerRetry: []policy.Policy{auth},
	}, &c.options)
}

// Endpoint returns the project endpoint the client is bound to.
func (c *Client) Endpoint() string { return c.endpoint }

// Agents returns the client for agents, threads, messages and runs.
func (c *Client) Agents() *AgentsClient { return &AgentsClient{c: c} }

// Files returns the client for files and vector stores.
func (c *Client) Files() *FilesClient { return &FilesClient{c: c} }

// Evaluations returns the client for agent run evaluations.
func (c *Client) Evaluations() *EvaluationsClient { return &EvaluationsClient{c: c} }

// Deployments returns the client for the project's model deployments.
func (c *Client) Deployments() *DeploymentsClient { return &DeploymentsClient{c: c} }

// Chat returns a chat completions client for an Azure OpenAI deployment in
// the resource that hosts the project. Requests go through an azcore
// pipeline carrying the project's credential.
func (c *Client) Chat(deployment string, opts ...openai.Option) (*openai.Client, error) {
	base, err := openai.AzureOpenAIEndpoint(c.endpoint, deployment)
	if err != nil {
		return nil, err
	}

	var auth policy.Policy
	if c.key != nil {
		auth = runtime.NewKeyCredentialPolicy(c.key, "api-key", nil)
	} else {
		auth = runtime.NewBearerTokenPolicy(c.token, []string{chatTokenScope}, nil)
	}

	all := append([]openai.Option{
		openai.WithBaseURL(base),
		openai.WithAPIVersion(openai.AzureOpenAIAPIVersion),
		openai.WithModel(deployment),
		openai.WithHTTPClient(&http.Client{Transport: pipelineTransport{pl: c.pipeline(auth)}}),
	}, opts...)
	return openai.New("", all...), nil
}

// pipelineTransport sends net/http requests through an azcore pipeline.
type pipelineTransport struct {
	pl runtime.Pipeline
}

func (t pipelineTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	preq, err := runtime.NewRequestFromRequest(req)
	if err != nil {
		return nil, err
	}
	// Streaming responses must reach the caller unbuffered.
	runtime.SkipBodyDownload(preq)
	return t.pl.Do(preq)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values) (*policy.Request, error) {
	req, err := runtime.NewRequest(ctx, method, runtime.JoinPaths(c.endpoint, path))
	if err != nil {
		return nil, err
	}
	q := req.Raw().URL.Query()
	q.Set("api-version", c.apiVersion)
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	req.Raw().URL.RawQuery = q.Encode()
	req.Raw().Header.Set("Accept", "application/json")
	return req, nil
}

// send runs req through the pipeline and decodes a JSON body into out
// (which may be nil).
func (c *Client) send(req *policy.Request, out any) error {
	raw := req.Raw()
	c.logger.DebugContext(raw.Context(), "sending project request", "method", raw.Method, "path", raw.URL.Path)

	resp, err := c.pl.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", raw.Method, raw.URL.Path, err)
	}
	if !runtime.HasStatusCode(resp, http.StatusOK, http.StatusCreated) {
		return azerr.FromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := runtime.UnmarshalAsJSON(resp, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", foundry.ErrInvalidResponse, raw.Method, raw.URL.Path, err)
	}
	return nil
}

// call issues a JSON request. body may be nil.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query)
	if err != nil {
		return err
	}
	if body != nil {
		if err := runtime.MarshalAsJSON(req, body); err != nil {
			return err
		}
	}
	return c.send(req, out)
}

// DeletionStatus is the body returned by delete operations.
type DeletionStatus struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

func (c *Client) delete(ctx context.Context, path string) (*DeletionStatus, error) {
	var out DeletionStatus
	if err := c.call(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
