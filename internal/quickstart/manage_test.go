// Copyright (c) Microsoft. All rights reserved.

package quickstart_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/azure-ai-foundry/foundry-samples/go/config"
	"github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"
)

func TestCreateProject(t *testing.T) {
	const account = "/subscriptions/sub-1/resourceGroups/rg-1/providers/Microsoft.CognitiveServices/accounts/res-1"
	svc := newService()
	svc.handle("PUT "+account, func(w http.ResponseWriter, r *http.Request) {
		b := decode(t, r)
		if b["kind"] != "AIServices" {
			t.Errorf("account kind = %v", b["kind"])
		}
		reply(w, http.StatusOK, map[string]any{"name": "res-1", "properties": map[string]any{"provisioningState": "Succeeded"}})
	})
	svc.handle("PUT "+account+"/projects/{project}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{
			"id": account + "/projects/" + r.PathValue("project"), "name": r.PathValue("project"), "location": "westus",
			"properties": map[string]any{
				"provisioningState": "Succeeded",
				"endpoints":         map[string]any{"AI Foundry API": "https://res-1.services.ai.azure.com/api/projects/" + r.PathValue("project")},
			},
		})
	})
	env, out, logs := testEnv(map[string]string{
		config.EnvSubscriptionID: "sub-1",
		config.EnvResourceGroup:  "rg-1",
		config.EnvResourceName:   "res-1",
		config.EnvLocation:       "westus",
		config.EnvAzureAIAPIKey:  "ignored-for-arm",
	}, svc)

	if err := quickstart.CreateProject(context.Background(), env); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Project Name: " + config.DefaultProjectName,
		"Provisioning State: Succeeded",
		"PROJECT_ENDPOINT=https://res-1.services.ai.azure.com/api/projects/" + config.DefaultProjectName,
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, want := range []string{"Creating Foundry account", "Creating Foundry project", "Foundry project ready"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
	for i, auth := range svc.authHeaders() {
		if auth != "Bearer entra-token" {
			t.Errorf("request %d auth = %q", i, auth)
		}
	}
}

func TestListDeployments(t *testing.T) {
	svc := newService()
	svc.handle("GET "+base+"/deployments", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"value": []map[string]any{
			{"name": "gpt-4o", "modelName": "gpt-4o", "modelPublisher": "OpenAI"},
			{"name": "phi-4", "modelName": "Phi-4", "modelPublisher": "Microsoft"},
		}})
	})
	env, out, _ := testEnv(map[string]string{
		config.EnvProjectEndpoint: projectEndpoint,
		config.EnvAzureAIAPIKey:   "key-1",
	}, svc)

	if err := quickstart.ListDeployments(context.Background(), env); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"OpenAI/gpt-4o", "Microsoft/Phi-4"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := svc.authHeaders()[0]; got != "api-key key-1" {
		t.Errorf("auth = %q", got)
	}
}
