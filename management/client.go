// Copyright (c) Microsoft. All rights reserved.

// Package management provisions Azure AI Foundry resources and projects
// through Azure Resource Manager.
package management

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
	"github.com/azure-ai-foundry/foundry-samples/go/internal/azerr"
)

const (
	moduleName    = "management"
	moduleVersion = "v0.1.0"

	// APIVersion is the Microsoft.CognitiveServices API version that
	// supports Foundry projects.
	APIVersion = "2025-04-01-preview"
)

// ClientOptions configures a [Client].
type ClientOptions struct {
	arm.ClientOptions

	// Logger receives provisioning progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client manages Foundry resources in one subscription.
type Client struct {
	subscriptionID string
	internal       *arm.Client
	logger         *slog.Logger
}

// NewClient creates a Client. options may be nil.
func NewClient(subscriptionID string, cred azcore.TokenCredential, options *ClientOptions) (*Client, error) {
	if strings.TrimSpace(subscriptionID) == "" {
		return nil, fmt.Errorf("%w: subscription ID is empty", foundry.ErrConfig)
	}
	if cred == nil {
		return nil, fmt.Errorf("%w: token credential is nil", foundry.ErrConfig)
	}
	if options == nil {
		options = &ClientOptions{}
	}
	cl, err := arm.NewClient(moduleName, moduleVersion, cred, &options.ClientOptions)
	if err != nil {
		return nil, err
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{subscriptionID: subscriptionID, internal: cl, logger: logger}, nil
}

// SKU is the pricing tier of an account.
type SKU struct {
	Name string `json:"name"`
}

// Identity is the managed identity of a resource.
type Identity struct {
	Type        string `json:"type"`
	PrincipalID string `json:"principalId,omitempty"`
	TenantID    string `json:"tenantId,omitempty"`
}

// AccountProperties are the mutable settings of an [Account].
type AccountProperties struct {
	AllowProjectManagement bool              `json:"allowProjectManagement"`
	CustomSubDomainName    string            `json:"customSubDomainName,omitempty"`
	Endpoint               string            `json:"endpoint,omitempty"`
	Endpoints              map[string]string `json:"endpoints,omitempty"`
	ProvisioningState      string            `json:"provisioningState,omitempty"`
}

// Account is a Foundry (AIServices) resource that hosts projects.
type Account struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name,omitempty"`
	Location   string            `json:"location"`
	Kind       string            `json:"kind"`
	SKU        *SKU              `json:"sku,omitempty"`
	Identity   *Identity         `json:"identity,omitempty"`
	Properties AccountProperties `json:"properties"`
}

// ProjectProperties are the mutable settings of a [Project].
type ProjectProperties struct {
	DisplayName       string            `json:"displayName,omitempty"`
	Description       string            `json:"description,omitempty"`
	Endpoints         map[string]string `json:"endpoints,omitempty"`
	ProvisioningState string            `json:"provisioningState,omitempty"`
	IsDefault         bool              `json:"isDefault,omitempty"`
}

// Project is a Foundry project inside an [Account].
type Project struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name,omitempty"`
	Type       string            `json:"type,omitempty"`
	Location   string            `json:"location"`
	Identity   *Identity         `json:"identity,omitempty"`
	Properties ProjectProperties `json:"properties"`
}

// Endpoint returns the project's data-plane endpoint, or "" if the service
// has not reported one. Without an "AI Foundry API" entry the endpoint with
// the lowest key wins.
func (p *Project) Endpoint() string {
	if ep, ok := p.Properties.Endpoints["AI Foundry API"]; ok {
		return ep
	}
	if keys := slices.Sorted(maps.Keys(p.Properties.Endpoints)); len(keys) > 0 {
		return p.Properties.Endpoints[keys[0]]
	}
	return ""
}

// CreateAccountOptions are the parameters of [Client.BeginCreateAccount].
type CreateAccountOptions struct {
	ResourceGroup string
	AccountName   string
	Location      string
	// SKU defaults to S0.
	SKU string
}

// CreateProjectOptions are the parameters of [Client.BeginCreateProject].
type CreateProjectOptions struct {
	ResourceGroup string
	AccountName   string
	ProjectName   string
	Location      string
	DisplayName   string
	Description   string
}

// WaitOptions controls how long-running operations are polled.
type WaitOptions struct {
	// Frequency defaults to 10 seconds.
	Frequency time.Duration
}

func (o *WaitOptions) pollOptions() *runtime.PollUntilDoneOptions {
	freq := 10 * time.Second
	if o != nil && o.Frequency > 0 {
		freq = o.Frequency
	}
	return &runtime.PollUntilDoneOptions{Frequency: freq}
}

func (c *Client) accountPath(resourceGroup, account string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.CognitiveServices/accounts/%s",
		url.PathEscape(c.subscriptionID), url.PathEscape(resourceGroup), url.PathEscape(account))
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*policy.Request, error) {
	req, err := runtime.NewRequest(ctx, method, runtime.JoinPaths(c.internal.Endpoint(), path))
	if err != nil {
		return nil, err
	}
	q := req.Raw().URL.Query()
	q.Set("api-version", APIVersion)
	req.Raw().URL.RawQuery = q.Encode()
	req.Raw().Header.Set("Accept", "application/json")
	return req, nil
}

// beginPut issues a PUT and wraps the response in an LRO poller.
func beginPut[T any](ctx context.Context, c *Client, path string, body any) (*runtime.Poller[T], error) {
	req, err := c.newRequest(ctx, http.MethodPut, path)
	if err != nil {
		return nil, err
	}
	if err := runtime.MarshalAsJSON(req, body); err != nil {
		return nil, err
	}
	resp, err := c.internal.Pipeline().Do(req)
	if err != nil {
		return nil, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK, http.StatusCreated, http.StatusAccepted) {
		return nil, azerr.FromResponse(resp)
	}
	return runtime.NewPoller[T](resp, c.internal.Pipeline(), nil)
}

// BeginCreateAccount creates or updates an AIServices account with project
// management enabled.
func (c *Client) BeginCreateAccount(ctx context.Context, opts CreateAccountOptions) (*runtime.Poller[Account], error) {
	sku := opts.SKU
	if sku == "" {
		sku = "S0"
	}
	body := Account{
		Location: opts.Location,
		Kind:     "AIServices",
		SKU:      &SKU{Name: sku},
		Identity: &Identity{Type: "SystemAssigned"},
		Properties: AccountProperties{
			AllowProjectManagement: true,
			CustomSubDomainName:    opts.AccountName,
		},
	}
	return beginPut[Account](ctx, c, c.accountPath(opts.ResourceGroup, opts.AccountName), body)
}

// CreateAccount creates an account and waits for provisioning to finish.
func (c *Client) CreateAccount(ctx context.Context, opts CreateAccountOptions, wait *WaitOptions) (*Account, error) {
	c.logger.InfoContext(ctx, "Creating Foundry account", "account", opts.AccountName, "resource_group", opts.ResourceGroup)
	poller, err := c.BeginCreateAccount(ctx, opts)
	if err != nil {
		return nil, err
	}
	acct, err := poller.PollUntilDone(ctx, wait.pollOptions())
	if err != nil {
		return nil, azerr.Convert(err)
	}
	c.logger.InfoContext(ctx, "Foundry account ready", "account", acct.Name, "state", acct.Properties.ProvisioningState)
	return &acct, nil
}

// BeginCreateProject creates or updates a project in an existing account.
func (c *Client) BeginCreateProject(ctx context.Context, opts CreateProjectOptions) (*runtime.Poller[Project], error) {
	body := Project{
		Location: opts.Location,
		Identity: &Identity{Type: "SystemAssigned"},
		Properties: ProjectProperties{
			DisplayName: opts.DisplayName,
			Description: opts.Description,
		},
	}
	path := c.accountPath(opts.ResourceGroup, opts.AccountName) + "/projects/" + url.PathEscape(opts.ProjectName)
	return beginPut[Project](ctx, c, path, body)
}

// CreateProject creates a project and waits for provisioning to finish.
func (c *Client) CreateProject(ctx context.Context, opts CreateProjectOptions, wait *WaitOptions) (*Project, error) {
	c.logger.InfoContext(ctx, "Creating Foundry project", "project", opts.ProjectName, "account", opts.AccountName)
	poller, err := c.BeginCreateProject(ctx, opts)
	if err != nil {
		return nil, err
	}
	p, err := poller.PollUntilDone(ctx, wait.pollOptions())
	if err != nil {
		return nil, azerr.Convert(err)
	}
	c.logger.InfoContext(ctx, "Foundry project ready", "project", p.Name, "state", p.Properties.ProvisioningState)
	return &p, nil
}

// GetProject fetches a project.
func (c *Client) GetProject(ctx context.Context, resourceGroup, accountName, projectName string) (*Project, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.accountPath(resourceGroup, accountName)+"/projects/"+url.PathEscape(projectName))
	if err != nil {
		return nil, err
	}
	resp, err := c.internal.Pipeline().Do(req)
	if err != nil {
		return nil, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return nil, azerr.FromResponse(resp)
	}
	var p Project
	if err := runtime.UnmarshalAsJSON(resp, &p); err != nil {
		return nil, fmt.Errorf("%w: decode project: %v", foundry.ErrInvalidResponse, err)
	}
	return &p, nil
}
