// Copyright (c) Microsoft. All rights reserved.

// Package present renders sample results for a terminal. Output written to
// anything other than a terminal is plain text.
package present

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
	"github.com/azure-ai-foundry/foundry-samples/go/management"
	"github.com/azure-ai-foundry/foundry-samples/go/projects"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#2D5BFF", Dark: "#7AA2F7"}
	subtle = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	good   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	bad    = lipgloss.Color("#ef4444")
)

// Presenter writes results to an output stream. Write errors are dropped.
type Presenter struct {
	w       io.Writer
	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// New returns a Presenter that writes to w.
func New(w io.Writer) *Presenter {
	r := lipgloss.NewRenderer(w)
	return &Presenter{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(accent),
		label:   r.NewStyle().Foreground(good),
		muted:   r.NewStyle().Foreground(subtle),
		success: r.NewStyle().Foreground(good),
		failure: r.NewStyle().Bold(true).Foreground(bad),
	}
}

func (p *Presenter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

func (p *Presenter) section(title string) {
	p.printf("\n%s\n", p.heading.Render(title))
}

func (p *Presenter) field(name string, value any) {
	p.printf("%s %v\n", p.label.Render(name+":"), value)
}

// Status prints a progress line.
func (p *Presenter) Status(format string, args ...any) {
	p.printf("%s\n", p.muted.Render(fmt.Sprintf(format, args...)))
}

// Completion prints the first choice of a chat completion and its token usage.
func (p *Presenter) Completion(resp *foundry.ChatResponse) {
	p.section("Response from assistant:")
	p.printf("%s\n", resp.Text())
	p.Usage(resp.Usage)
}

// Usage prints token usage statistics. Zero usage is not printed.
func (p *Presenter) Usage(u foundry.UsageDetails) {
	if u.IsZero() {
		return
	}
	p.section("Usage Statistics:")
	p.field("Prompt Tokens", u.PromptTokens)
	p.field("Completion Tokens", u.CompletionTokens)
	p.field("Total Tokens", u.TotalTokens)
}

// BeginStream prints the heading of a streamed response.
func (p *Presenter) BeginStream() {
	p.section("Response from AI assistant (streaming):")
}

// Token prints one streamed fragment without a trailing newline.
func (p *Presenter) Token(text string) {
	p.printf("%s", text)
}

// EndStream terminates a streamed response.
func (p *Presenter) EndStream(u foundry.UsageDetails) {
	p.printf("\n")
	p.Usage(u)
	p.printf("\n%s\n", p.success.Render("Streaming completed successfully"))
}

// Agent prints a created agent.
func (p *Presenter) Agent(a *projects.Agent) {
	p.printf("Agent created: %s (ID: %s)\n", a.Name, a.ID)
}

// Thread prints a created thread.
func (p *Presenter) Thread(t *projects.Thread) {
	p.printf("Thread created: %s\n", t.ID)
}

// Run prints the terminal state of a run.
func (p *Presenter) Run(r *projects.Run) {
	status := string(r.Status)
	if r.Status == projects.RunStatusCompleted {
		status = p.success.Render(status)
	} else {
		status = p.failure.Render(status)
	}
	p.printf("Run completed with status: %s\n", status)
	if r.LastError != nil {
		p.printf("%s %s (%s)\n", p.failure.Render("Run failed:"), r.LastError.Message, r.LastError.Code)
	}
	if r.Usage != nil {
		p.Usage(foundry.UsageDetails{
			PromptTokens:     r.Usage.PromptTokens,
			CompletionTokens: r.Usage.CompletionTokens,
			TotalTokens:      r.Usage.TotalTokens,
		})
	}
}

// Transcript prints the messages of a thread in order.
func (p *Presenter) Transcript(msgs []projects.ThreadMessage) {
	p.section("Conversation:")
	for i := range msgs {
		p.printf("%s: %s\n", p.label.Render(string(msgs[i].Role)), msgs[i].Text())
	}
}

// Evaluation prints evaluation scores, sorted by metric name, and feedback.
func (p *Presenter) Evaluation(e *projects.Evaluation) {
	p.section("Evaluation Results:")
	p.field("Evaluation ID", e.ID)
	if e.CreatedAt > 0 {
		p.field("Created At", time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339))
	}
	metrics := make([]string, 0, len(e.Scores))
	for m := range e.Scores {
		metrics = append(metrics, string(m))
	}
	sort.Strings(metrics)
	for _, m := range metrics {
		p.printf("%s Score: %.2f/10\n", m, e.Scores[projects.Metric(m)])
	}
	if e.Feedback != "" {
		p.section("Feedback:")
		p.printf("%s\n", e.Feedback)
	}
}

// File prints an uploaded file.
func (p *Presenter) File(f *projects.File) {
	p.printf("File uploaded with ID: %s (%s, %d bytes)\n", f.ID, f.Filename, f.Bytes)
}

// VectorStore prints a vector store and its file counts.
func (p *Presenter) VectorStore(vs *projects.VectorStore) {
	p.printf("Vector store ready: %s (%d/%d files indexed)\n", vs.ID, vs.FileCounts.Completed, vs.FileCounts.Total)
}

// Project prints a provisioned project.
func (p *Presenter) Project(pr *management.Project) {
	p.section("Project created successfully!")
	p.field("Project Name", pr.Name)
	p.field("Project ID", pr.ID)
	if pr.Properties.Description != "" {
		p.field("Description", pr.Properties.Description)
	}
	p.field("Provisioning State", pr.Properties.ProvisioningState)
	if ep := pr.Endpoint(); ep != "" {
		p.printf("\nSet PROJECT_ENDPOINT=%s in your .env file to use this project in other samples\n", ep)
	}
}

// Deployments prints a table of model deployments.
func (p *Presenter) Deployments(ds []projects.Deployment) {
	p.section("Deployments:")
	if len(ds) == 0 {
		p.printf("%s\n", p.muted.Render("(none)"))
		return
	}
	width := len("NAME")
	for _, d := range ds {
		width = max(width, len(d.Name))
	}
	p.printf("%-*s  %s\n", width, "NAME", "MODEL")
	for _, d := range ds {
		model := strings.TrimPrefix(strings.Join([]string{d.ModelPublisher, d.ModelName}, "/"), "/")
		if d.ModelVersion != "" {
			model += " (" + d.ModelVersion + ")"
		}
		if d.SKU != nil && d.SKU.Name != "" {
			model += " [" + d.SKU.Name + "]"
		}
		p.printf("%-*s  %s\n", width, d.Name, model)
	}
}
