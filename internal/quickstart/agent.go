// Copyright (c) Microsoft. All rights reserved.

package quickstart

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/azure-ai-foundry/foundry-samples/go/config"
	"github.com/azure-ai-foundry/foundry-samples/go/projects"
)

const (
	agentPrompt      = "Hi! Share one tip for writing readable Go code."
	fileSearchPrompt = "Find and list the benefits of cloud computing from my document."
	evaluationPrompt = "What should I wear if it's going to be rainy and cold tomorrow?"
)

// sampleDocument is uploaded by the file search sample.
const sampleDocument = `# Cloud Computing Overview

Cloud computing delivers computing services over the internet.

## Benefits

1. Cost savings: pay only for the resources you use.
2. Scalability: scale resources up or down on demand.
3. Reliability: data is replicated across regions for disaster recovery.
4. Security: providers invest heavily in physical and network security.
5. Speed: new resources are available within minutes.
`

// cleanup collects best-effort deletions of remote resources.
type cleanup struct {
	env   *Env
	steps []func(context.Context) error
	names []string
}

func (c *cleanup) add(name string, fn func(context.Context) error) {
	c.steps = append(c.steps, fn)
	c.names = append(c.names, name)
}

// run executes the deletions in reverse order. Failures are logged.
func (c *cleanup) run(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i := len(c.steps) - 1; i >= 0; i-- {
		if err := c.steps[i](ctx); err != nil {
			c.env.Logger.Warn("cleanup failed", "resource", c.names[i], "error", err)
			continue
		}
		c.env.Logger.Info("Deleted " + c.names[i])
	}
}

// Agent creates an agent, runs it on a new thread and prints the
// conversation. The agent and thread are deleted afterwards.
func Agent(ctx context.Context, env *Env) error {
	s, err := config.LoadAgent(env.Config)
	if err != nil {
		return err
	}
	client, err := env.projectClient(s.ProjectEndpoint, s.Credential)
	if err != nil {
		return err
	}
	agents := client.Agents()
	done := &cleanup{env: env}
	defer done.run(ctx)

	env.Logger.Info("Creating agent", "name", s.AgentName, "model", s.Model)
	agent, err := agents.CreateAgent(ctx, projects.CreateAgentOptions{
		Model:        s.Model,
		Name:         s.AgentName,
		Instructions: s.Instructions,
	})
	if err != nil {
		return err
	}
	done.add("agent "+agent.ID, func(ctx context.Context) error {
		_, err := agents.DeleteAgent(ctx, agent.ID)
		return err
	})
	env.Out.Agent(agent)

	run, err := agents.CreateThreadAndRun(ctx, projects.CreateThreadAndRunOptions{
		AgentID: agent.ID,
		Thread: &projects.CreateThreadOptions{
			Messages: []projects.ThreadMessageOptions{{Role: projects.MessageRoleUser, Content: agentPrompt}},
		},
	})
	if err != nil {
		return err
	}
	done.add("thread "+run.ThreadID, func(ctx context.Context) error {
		_, err := agents.DeleteThread(ctx, run.ThreadID)
		return err
	})
	env.Out.Thread(&projects.Thread{ID: run.ThreadID})

	return finishRun(ctx, env, agents, run)
}

// finishRun waits for run and prints its outcome and the thread transcript.
func finishRun(ctx context.Context, env *Env, agents *projects.AgentsClient, run *projects.Run) error {
	env.Out.Status("Run created: %s", run.ID)
	run, err := agents.WaitForRun(ctx, run.ThreadID, run.ID, env.Poll)
	if err != nil {
		return err
	}
	env.Out.Run(run)

	msgs, err := agents.ListMessages(ctx, run.ThreadID)
	if err != nil {
		return err
	}
	env.Out.Transcript(msgs)
	return nil
}

// FileSearch uploads a document, indexes it in a vector store and asks an
// agent with the file_search tool about it. Every resource it creates is
// deleted afterwards.
func FileSearch(ctx context.Context, env *Env) error {
	s, err := config.LoadFileSearch(env.Config)
	if err != nil {
		return err
	}
	client, err := env.projectClient(s.ProjectEndpoint, s.Credential)
	if err != nil {
		return err
	}
	files, agents := client.Files(), client.Agents()
	done := &cleanup{env: env}
	defer done.run(ctx)

	name := "cloud-computing-" + uuid.NewString() + ".md"
	env.Out.Status("Uploading file: %s", name)
	file, err := files.UploadFile(ctx, name, strings.NewReader(sampleDocument), projects.FilePurposeAgents)
	if err != nil {
		return err
	}
	done.add("file "+file.ID, func(ctx context.Context) error {
		_, err := files.DeleteFile(ctx, file.ID)
		return err
	})
	env.Out.File(file)

	vs, err := files.CreateVectorStore(ctx, projects.CreateVectorStoreOptions{
		Name:    "quickstart-docs",
		FileIDs: []string{file.ID},
	})
	if err != nil {
		return err
	}
	done.add("vector store "+vs.ID, func(ctx context.Context) error {
		_, err := files.DeleteVectorStore(ctx, vs.ID)
		return err
	})
	if vs, err = files.WaitForVectorStore(ctx, vs.ID, env.Poll); err != nil {
		return err
	}
	env.Out.VectorStore(vs)

	env.Out.Status("Creating agent with file search capability...")
	agent, err := agents.CreateAgent(ctx, projects.CreateAgentOptions{
		Model:        s.Model,
		Name:         s.AgentName,
		Description:  "An agent that helps with document searching",
		Instructions: s.Instructions,
		Tools:        []projects.ToolDefinition{{Type: projects.ToolTypeFileSearch}},
		ToolResources: &projects.ToolResources{
			FileSearch: &projects.FileSearchToolResource{VectorStoreIDs: []string{vs.ID}},
		},
	})
	if err != nil {
		return err
	}
	done.add("agent "+agent.ID, func(ctx context.Context) error {
		_, err := agents.DeleteAgent(ctx, agent.ID)
		return err
	})
	env.Out.Agent(agent)

	run, err := startRun(ctx, env, agents, agent.ID, fileSearchPrompt, done)
	if err != nil {
		return err
	}
	return finishRun(ctx, env, agents, run)
}

// startRun creates a thread holding prompt and starts agentID on it.
func startRun(ctx context.Context, env *Env, agents *projects.AgentsClient, agentID, prompt string, done *cleanup) (*projects.Run, error) {
	thread, err := agents.CreateThread(ctx, nil)
	if err != nil {
		return nil, err
	}
	done.add("thread "+thread.ID, func(ctx context.Context) error {
		_, err := agents.DeleteThread(ctx, thread.ID)
		return err
	})
	env.Out.Thread(thread)

	if _, err := agents.CreateMessage(ctx, thread.ID, projects.MessageRoleUser, prompt); err != nil {
		return nil, err
	}
	return agents.CreateRun(ctx, thread.ID, projects.CreateRunOptions{AgentID: agentID})
}

// EvaluateAgent runs an agent once and scores the run for helpfulness,
// accuracy and quality.
func EvaluateAgent(ctx context.Context, env *Env) error {
	s, err := config.LoadEvaluation(env.Config)
	if err != nil {
		return err
	}
	client, err := env.projectClient(s.ProjectEndpoint, s.Credential)
	if err != nil {
		return err
	}
	agents := client.Agents()
	done := &cleanup{env: env}
	defer done.run(ctx)

	env.Out.Status("Creating and running an agent to generate a run for evaluation...")
	agent, err := agents.CreateAgent(ctx, projects.CreateAgentOptions{
		Model:        s.Model,
		Name:         s.AgentName,
		Description:  "An agent that provides weather information",
		Instructions: s.Instructions,
	})
	if err != nil {
		return err
	}
	done.add("agent "+agent.ID, func(ctx context.Context) error {
		_, err := agents.DeleteAgent(ctx, agent.ID)
		return err
	})
	env.Out.Agent(agent)

	run, err := startRun(ctx, env, agents, agent.ID, evaluationPrompt, done)
	if err != nil {
		return err
	}
	if err := finishRun(ctx, env, agents, run); err != nil {
		return err
	}

	env.Out.Status("Evaluating agent run...")
	evals := client.Evaluations()
	ev, err := evals.EvaluateRun(ctx, projects.EvaluateRunOptions{
		ThreadID: run.ThreadID,
		RunID:    run.ID,
		Metrics:  []projects.Metric{projects.MetricHelpfulness, projects.MetricAccuracy, projects.MetricQuality},
	})
	if err != nil {
		return err
	}
	if ev, err = evals.WaitForEvaluation(ctx, ev, env.Poll); err != nil {
		return err
	}
	env.Out.Evaluation(ev)
	return nil
}
