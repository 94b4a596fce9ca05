// Copyright (c) Microsoft. All rights reserved.

package quickstart

import (
	"context"

	"github.com/azure-ai-foundry/foundry-samples/go/config"
	"github.com/azure-ai-foundry/foundry-samples/go/management"
	"github.com/azure-ai-foundry/foundry-samples/go/projects"
)

// CreateProject provisions a Foundry resource with project management
// enabled, then a project inside it. Both operations are idempotent.
func CreateProject(ctx context.Context, env *Env) error {
	s, err := config.LoadManagement(env.Config)
	if err != nil {
		return err
	}
	client, err := env.managementClient(s.SubscriptionID, s.Credential)
	if err != nil {
		return err
	}

	env.Out.Status("Creating Foundry resource %s...", s.ResourceName)
	if _, err := client.CreateAccount(ctx, management.CreateAccountOptions{
		ResourceGroup: s.ResourceGroup,
		AccountName:   s.ResourceName,
		Location:      s.Location,
	}, env.Wait); err != nil {
		return err
	}

	env.Out.Status("Creating project...")
	project, err := client.CreateProject(ctx, management.CreateProjectOptions{
		ResourceGroup: s.ResourceGroup,
		AccountName:   s.ResourceName,
		ProjectName:   s.ProjectName,
		Location:      s.Location,
		DisplayName:   s.ProjectName,
		Description:   "A project created using the Go quickstart",
	}, env.Wait)
	if err != nil {
		return err
	}
	env.Out.Project(project)
	return nil
}

// ListDeployments prints the model deployments visible to a project.
func ListDeployments(ctx context.Context, env *Env) error {
	s, err := config.LoadDeployments(env.Config)
	if err != nil {
		return err
	}
	client, err := env.projectClient(s.ProjectEndpoint, s.Credential)
	if err != nil {
		return err
	}

	var all []projects.Deployment
	pager := client.Deployments().NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return err
		}
		all = append(all, page.Value...)
	}
	env.Out.Deployments(all)
	return nil
}
