// Copyright (c) Microsoft. All rights reserved.

package projects

import "strings"

// RunStatus is the server-side state of a [Run].
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusIncomplete     RunStatus = "incomplete"
	RunStatusExpired        RunStatus = "expired"
)

// IsPending reports whether the run has not yet left the queue or finished
// executing. Every other status, including unknown ones, is terminal for
// polling purposes.
func (s RunStatus) IsPending() bool {
	return s == RunStatusQueued || s == RunStatusInProgress
}

// ToolType names an agent tool.
type ToolType string

const (
	ToolTypeCodeInterpreter ToolType = "code_interpreter"
	ToolTypeFileSearch      ToolType = "file_search"
)

// ToolDefinition enables a built-in tool on an agent.
type ToolDefinition struct {
	Type ToolType `json:"type"`
}

// FileSearchToolResource binds vector stores to the file_search tool.
type FileSearchToolResource struct {
	VectorStoreIDs []string `json:"vector_store_ids,omitempty"`
}

// CodeInterpreterToolResource binds files to the code_interpreter tool.
type CodeInterpreterToolResource struct {
	FileIDs []string `json:"file_ids,omitempty"`
}

// ToolResources holds per-tool resources of an agent or thread.
type ToolResources struct {
	FileSearch      *FileSearchToolResource      `json:"file_search,omitempty"`
	CodeInterpreter *CodeInterpreterToolResource `json:"code_interpreter,omitempty"`
}

// Agent is a remote assistant configuration.
type Agent struct {
	ID            string            `json:"id"`
	Object        string            `json:"object,omitempty"`
	CreatedAt     int64             `json:"created_at"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Model         string            `json:"model"`
	Instructions  string            `json:"instructions"`
	Tools         []ToolDefinition  `json:"tools,omitempty"`
	ToolResources *ToolResources    `json:"tool_resources,omitempty"`
	Temperature   *float64          `json:"temperature,omitempty"`
	TopP          *float64          `json:"top_p,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Thread is a remote conversation.
type Thread struct {
	ID            string            `json:"id"`
	Object        string            `json:"object,omitempty"`
	CreatedAt     int64             `json:"created_at"`
	ToolResources *ToolResources    `json:"tool_resources,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// MessageRole is the author of a [ThreadMessage].
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// MessageText is the text payload of a content block.
type MessageText struct {
	Value       string `json:"value"`
	Annotations []any  `json:"annotations,omitempty"`
}

// MessageContent is one content block of a [ThreadMessage]. Only text
// blocks carry Text.
type MessageContent struct {
	Type string       `json:"type"`
	Text *MessageText `json:"text,omitempty"`
}

// ThreadMessage is a message stored in a thread.
type ThreadMessage struct {
	ID        string           `json:"id"`
	Object    string           `json:"object,omitempty"`
	CreatedAt int64            `json:"created_at"`
	ThreadID  string           `json:"thread_id"`
	Role      MessageRole      `json:"role"`
	Content   []MessageContent `json:"content"`
	AgentID   string           `json:"assistant_id,omitempty"`
	RunID     string           `json:"run_id,omitempty"`
}

// Text concatenates the message's text blocks.
func (m *ThreadMessage) Text() string {
	var parts []string
	for _, c := range m.Content {
		if c.Text != nil {
			parts = append(parts, c.Text.Value)
		}
	}
	return strings.Join(parts, "\n")
}

// RunError describes why a run failed.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RunUsage is the token usage of a completed run.
type RunUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Run is one execution of an agent against a thread.
type Run struct {
	ID          string    `json:"id"`
	Object      string    `json:"object,omitempty"`
	CreatedAt   int64     `json:"created_at"`
	ThreadID    string    `json:"thread_id"`
	AgentID     string    `json:"assistant_id"`
	Status      RunStatus `json:"status"`
	Model       string    `json:"model,omitempty"`
	LastError   *RunError `json:"last_error,omitempty"`
	Usage       *RunUsage `json:"usage,omitempty"`
	CompletedAt *int64    `json:"completed_at,omitempty"`
}
