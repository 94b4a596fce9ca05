// Copyright (c) Microsoft. All rights reserved.

package projects

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// AgentsClient manages agents, threads, messages and runs.
type AgentsClient struct {
	c *Client
}

// CreateAgentOptions are the parameters of [AgentsClient.CreateAgent].
type CreateAgentOptions struct {
	Model         string            `json:"model"`
	Name          string            `json:"name,omitempty"`
	Description   string            `json:"description,omitempty"`
	Instructions  string            `json:"instructions,omitempty"`
	Tools         []ToolDefinition  `json:"tools,omitempty"`
	ToolResources *ToolResources    `json:"tool_resources,omitempty"`
	Temperature   *float64          `json:"temperature,omitempty"`
	TopP          *float64          `json:"top_p,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// CreateAgent creates an agent.
func (a *AgentsClient) CreateAgent(ctx context.Context, opts CreateAgentOptions) (*Agent, error) {
	var out Agent
	if err := a.c.call(ctx, http.MethodPost, "assistants", nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAgent fetches an agent by ID.
func (a *AgentsClient) GetAgent(ctx context.Context, agentID string) (*Agent, error) {
	var out Agent
	if err := a.c.call(ctx, http.MethodGet, "assistants/"+url.PathEscape(agentID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAgent deletes an agent.
func (a *AgentsClient) DeleteAgent(ctx context.Context, agentID string) (*DeletionStatus, error) {
	return a.c.delete(ctx, "assistants/"+url.PathEscape(agentID))
}

// ListOrder sorts list results by creation time.
type ListOrder string

const (
	ListOrderAsc  ListOrder = "asc"
	ListOrderDesc ListOrder = "desc"
)

// ListOptions are cursor-paging parameters shared by list operations.
type ListOptions struct {
	Limit int
	Order ListOrder
}

func (o *ListOptions) query(after string) url.Values {
	q := url.Values{}
	if o != nil {
		if o.Limit > 0 {
			q.Set("limit", strconv.Itoa(o.Limit))
		}
		if o.Order != "" {
			q.Set("order", string(o.Order))
		}
	}
	if after != "" {
		q.Set("after", after)
	}
	return q
}

// ListAgentsResponse is one page of agents.
type ListAgentsResponse struct {
	Data    []Agent `json:"data"`
	FirstID string  `json:"first_id"`
	LastID  string  `json:"last_id"`
	HasMore bool    `json:"has_more"`
}

// NewListAgentsPager pages through the project's agents.
func (a *AgentsClient) NewListAgentsPager(opts *ListOptions) *runtime.Pager[ListAgentsResponse] {
	return runtime.NewPager(runtime.PagingHandler[ListAgentsResponse]{
		More: func(page ListAgentsResponse) bool {
			return page.HasMore && page.LastID != ""
		},
		Fetcher: func(ctx context.Context, cur *ListAgentsResponse) (ListAgentsResponse, error) {
			var after string
			if cur != nil {
				after = cur.LastID
			}
			var page ListAgentsResponse
			err := a.c.call(ctx, http.MethodGet, "assistants", opts.query(after), nil, &page)
			return page, err
		},
	})
}

// ThreadMessageOptions is an initial message supplied when creating a thread.
type ThreadMessageOptions struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// CreateThreadOptions are the parameters of [AgentsClient.CreateThread].
type CreateThreadOptions struct {
	Messages      []ThreadMessageOptions `json:"messages,omitempty"`
	ToolResources *ToolResources         `json:"tool_resources,omitempty"`
	Metadata      map[string]string      `json:"metadata,omitempty"`
}

// CreateThread creates a thread. opts may be nil.
func (a *AgentsClient) CreateThread(ctx context.Context, opts *CreateThreadOptions) (*Thread, error) {
	if opts == nil {
		opts = &CreateThreadOptions{}
	}
	var out Thread
	if err := a.c.call(ctx, http.MethodPost, "threads", nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteThread deletes a thread.
func (a *AgentsClient) DeleteThread(ctx context.Context, threadID string) (*DeletionStatus, error) {
	return a.c.delete(ctx, "threads/"+url.PathEscape(threadID))
}

// CreateMessage appends a message to a thread.
func (a *AgentsClient) CreateMessage(ctx context.Context, threadID string, role MessageRole, content string) (*ThreadMessage, error) {
	var out ThreadMessage
	body := ThreadMessageOptions{Role: role, Content: content}
	if err := a.c.call(ctx, http.MethodPost, "threads/"+url.PathEscape(threadID)+"/messages", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMessagesResponse is one page of thread messages.
type ListMessagesResponse struct {
	Data    []ThreadMessage `json:"data"`
	FirstID string          `json:"first_id"`
	LastID  string          `json:"last_id"`
	HasMore bool            `json:"has_more"`
}

// NewListMessagesPager pages through the messages of a thread.
func (a *AgentsClient) NewListMessagesPager(threadID string, opts *ListOptions) *runtime.Pager[ListMessagesResponse] {
	path := "threads/" + url.PathEscape(threadID) + "/messages"
	return runtime.NewPager(runtime.PagingHandler[ListMessagesResponse]{
		More: func(page ListMessagesResponse) bool {
			return page.HasMore && page.LastID != ""
		},
		Fetcher: func(ctx context.Context, cur *ListMessagesResponse) (ListMessagesResponse, error) {
			var after string
			if cur != nil {
				after = cur.LastID
			}
			var page ListMessagesResponse
			err := a.c.call(ctx, http.MethodGet, path, opts.query(after), nil, &page)
			return page, err
		},
	})
}

// ListMessages returns every message of a thread in chronological order.
func (a *AgentsClient) ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error) {
	pager := a.NewListMessagesPager(threadID, &ListOptions{Order: ListOrderAsc})
	var all []ThreadMessage
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
	}
	return all, nil
}

// CreateRunOptions are the parameters of [AgentsClient.CreateRun].
type CreateRunOptions struct {
	AgentID                string                 `json:"assistant_id"`
	Model                  string                 `json:"model,omitempty"`
	Instructions           string                 `json:"instructions,omitempty"`
	AdditionalInstructions string                 `json:"additional_instructions,omitempty"`
	AdditionalMessages     []ThreadMessageOptions `json:"additional_messages,omitempty"`
	Temperature            *float64               `json:"temperature,omitempty"`
	MaxCompletionTokens    *int                   `json:"max_completion_tokens,omitempty"`
}

// CreateRun starts an agent run on a thread. The run executes
// asynchronously; see [AgentsClient.WaitForRun].
func (a *AgentsClient) CreateRun(ctx context.Context, threadID string, opts CreateRunOptions) (*Run, error) {
	var out Run
	if err := a.c.call(ctx, http.MethodPost, "threads/"+url.PathEscape(threadID)+"/runs", nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateThreadAndRunOptions are the parameters of
// [AgentsClient.CreateThreadAndRun].
type CreateThreadAndRunOptions struct {
	AgentID      string               `json:"assistant_id"`
	Thread       *CreateThreadOptions `json:"thread,omitempty"`
	Instructions string               `json:"instructions,omitempty"`
}

// CreateThreadAndRun creates a thread and starts a run on it in one call.
func (a *AgentsClient) CreateThreadAndRun(ctx context.Context, opts CreateThreadAndRunOptions) (*Run, error) {
	var out Run
	if err := a.c.call(ctx, http.MethodPost, "threads/runs", nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRun fetches the current state of a run.
func (a *AgentsClient) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var out Run
	path := "threads/" + url.PathEscape(threadID) + "/runs/" + url.PathEscape(runID)
	if err := a.c.call(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForRun polls a run until it leaves the queued/in_progress states and
// returns it. A failed run is returned without error; inspect Status and
// LastError.
func (a *AgentsClient) WaitForRun(ctx context.Context, threadID, runID string, opts *PollOptions) (*Run, error) {
	return PollUntil(ctx,
		func(ctx context.Context) (*Run, error) { return a.GetRun(ctx, threadID, runID) },
		func(r *Run) bool {
			if !r.Status.IsPending() {
				return false
			}
			a.c.logger.InfoContext(ctx, "Run status: "+string(r.Status)+" - waiting...", "run_id", r.ID)
			return true
		},
		opts,
	)
}

// CreateAndProcessRun starts a run and waits for it to finish.
func (a *AgentsClient) CreateAndProcessRun(ctx context.Context, threadID string, opts CreateRunOptions, poll *PollOptions) (*Run, error) {
	run, err := a.CreateRun(ctx, threadID, opts)
	if err != nil {
		return nil, err
	}
	return a.WaitForRun(ctx, threadID, run.ID, poll)
}
