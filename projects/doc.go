// Copyright (c) Microsoft. All rights reserved.

// Package projects is a client for the Azure AI Foundry project data plane:
// agents, threads and runs, files and vector stores, evaluations, and model
// deployments.
//
// One [Client] holds the authenticated azcore pipeline; the sub-clients
// returned by [Client.Agents], [Client.Files], [Client.Evaluations] and
// [Client.Deployments] share it without re-authenticating.
//
//	client, err := projects.NewClient(endpoint, cred, nil)
//	agent, err := client.Agents().CreateAgent(ctx, projects.CreateAgentOptions{
//	    Model:        "gpt-4o",
//	    Name:         "my-agent",
//	    Instructions: "You are a helpful assistant.",
//	})
//
// Runs complete asynchronously; [AgentsClient.WaitForRun] polls until the
// run leaves the queued/in_progress states.
package projects
