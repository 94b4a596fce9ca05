// Copyright (c) Microsoft. All rights reserved.

package quickstart

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/azure-ai-foundry/foundry-samples/go/internal/logging"
)

// Workflow is one sample.
type Workflow func(ctx context.Context, env *Env) error

// Sample names a workflow for the command line.
type Sample struct {
	Name  string
	Short string
	Run   Workflow
}

// Samples lists every sample in the order they are documented.
var Samples = []Sample{
	{"agent", "Create an agent, run it on a thread and print the conversation", Agent},
	{"chat", "Chat completion against an Azure AI inference deployment", Chat},
	{"chat-streaming", "Streaming chat completion against an Azure AI inference deployment", ChatStreaming},
	{"project-chat", "Chat completion through the project's Azure OpenAI endpoint", ProjectChat},
	{"openai-chat", "Chat completion against the OpenAI platform", OpenAIChat},
	{"openai-chat-streaming", "Streaming chat completion against the OpenAI platform", OpenAIChatStreaming},
	{"file-search", "Answer questions from an uploaded document with the file_search tool", FileSearch},
	{"evaluate-agent", "Run an agent and score the run", EvaluateAgent},
	{"create-project", "Provision a Foundry resource and project", CreateProject},
	{"deployments", "List the model deployments of a project", ListDeployments},
}

// Execute builds an Env writing to out and runs w, reporting any failure
// through logger.
func Execute(ctx context.Context, logger *slog.Logger, out io.Writer, w Workflow) error {
	env, err := NewEnv(logger, out)
	if err != nil {
		return Report(logger, err)
	}
	return Report(logger, w(ctx, env))
}

// Main runs w as a standalone program and exits non-zero on failure.
func Main(w Workflow) {
	logger := logging.Setup()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Execute(ctx, logger, os.Stdout, w)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
