// Copyright (c) Microsoft. All rights reserved.

package projects

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// DeploymentSKU is the capacity tier of a deployment.
type DeploymentSKU struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity,omitempty"`
}

// Deployment is a model deployed in the project's resource.
type Deployment struct {
	Type           string         `json:"type,omitempty"`
	Name           string         `json:"name"`
	ModelName      string         `json:"modelName"`
	ModelVersion   string         `json:"modelVersion"`
	ModelPublisher string         `json:"modelPublisher"`
	SKU            *DeploymentSKU `json:"sku,omitempty"`
}

// ListDeploymentsResponse is one page of deployments.
type ListDeploymentsResponse struct {
	Value    []Deployment `json:"value"`
	NextLink string       `json:"nextLink,omitempty"`
}

// ListDeploymentsOptions filters [DeploymentsClient.NewListPager].
type ListDeploymentsOptions struct {
	ModelPublisher string
	ModelName      string
}

// DeploymentsClient lists model deployments.
type DeploymentsClient struct {
	c *Client
}

// NewListPager pages through the project's deployments.
func (d *DeploymentsClient) NewListPager(opts *ListDeploymentsOptions) *runtime.Pager[ListDeploymentsResponse] {
	return runtime.NewPager(runtime.PagingHandler[ListDeploymentsResponse]{
		More: func(page ListDeploymentsResponse) bool {
			return page.NextLink != ""
		},
		Fetcher: func(ctx context.Context, cur *ListDeploymentsResponse) (ListDeploymentsResponse, error) {
			var page ListDeploymentsResponse
			if cur != nil {
				req, err := runtime.NewRequest(ctx, http.MethodGet, cur.NextLink)
				if err != nil {
					return page, err
				}
				err = d.c.send(req, &page)
				return page, err
			}
			q := url.Values{}
			if opts != nil {
				if opts.ModelPublisher != "" {
					q.Set("modelPublisher", opts.ModelPublisher)
				}
				if opts.ModelName != "" {
					q.Set("modelName", opts.ModelName)
				}
			}
			err := d.c.call(ctx, http.MethodGet, "deployments", q, nil, &page)
			return page, err
		},
	})
}

// Get fetches a deployment by name.
func (d *DeploymentsClient) Get(ctx context.Context, name string) (*Deployment, error) {
	var out Deployment
	if err := d.c.call(ctx, http.MethodGet, "deployments/"+url.PathEscape(name), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
