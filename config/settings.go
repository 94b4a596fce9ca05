// Copyright (c) Microsoft. All rights reserved.

package config

import (
	"github.com/azure-ai-foundry/foundry-samples/go/credential"
)

// Environment variable names.
const (
	EnvProjectEndpoint          = "PROJECT_ENDPOINT"
	EnvAzureEndpoint            = "AZURE_ENDPOINT"
	EnvModelDeploymentName      = "MODEL_DEPLOYMENT_NAME"
	EnvAzureModelDeploymentName = "AZURE_MODEL_DEPLOYMENT_NAME"
	EnvAzureDeployment          = "AZURE_DEPLOYMENT"
	EnvAgentName                = "AGENT_NAME"
	EnvAgentInstructions        = "AGENT_INSTRUCTIONS"
	EnvAzureAIAPIKey            = "AZURE_AI_API_KEY"
	EnvAzureAPIKey              = "AZURE_API_KEY"
	EnvTenantID                 = "AZURE_TENANT_ID"
	EnvClientID                 = "AZURE_CLIENT_ID"
	EnvClientSecret             = "AZURE_CLIENT_SECRET"
	EnvModelAPIPath             = "AZURE_MODEL_API_PATH"
	EnvChatPrompt               = "CHAT_PROMPT"
	EnvOpenAIAPIKey             = "OPENAI_API_KEY"
	EnvOpenAIModel              = "OPENAI_MODEL"
	EnvSubscriptionID           = "AZURE_SUBSCRIPTION_ID"
	EnvResourceGroup            = "AZURE_RESOURCE_GROUP"
	EnvResourceName             = "FOUNDRY_RESOURCE_NAME"
	EnvProjectName              = "FOUNDRY_PROJECT_NAME"
	EnvLocation                 = "AZURE_LOCATION"
)

// Defaults substituted when optional settings are absent.
const (
	DefaultModel               = "gpt-4o"
	DefaultAgentName           = "go-quickstart-agent"
	DefaultAgentInstructions   = "You are a helpful assistant that provides clear and concise information."
	DefaultInferenceDeployment = "phi-4"
	DefaultAPIPath             = "deployments"
	DefaultPrompt              = "What best practices should I follow when asking an AI model to review Go code?"
	DefaultFileSearchAgentName = "Document Assistant"
	DefaultEvaluationAgentName = "Weather Assistant"
	DefaultProjectName         = "go-quickstart-project"
	DefaultLocation            = "eastus"
)

// AgentSettings configures the agent, file search and evaluation samples.
type AgentSettings struct {
	ProjectEndpoint string
	Model           string
	AgentName       string
	Instructions    string
	Credential      credential.Settings
}

// InferenceSettings configures the chat samples that call a model
// deployment through the Azure AI inference route.
type InferenceSettings struct {
	Endpoint   string
	Deployment string
	APIPath    string
	Prompt     string
	Credential credential.Settings
}

// ChatSettings configures chat through a project's Azure OpenAI deployment.
type ChatSettings struct {
	ProjectEndpoint string
	Deployment      string
	Prompt          string
	Credential      credential.Settings
}

// OpenAISettings configures the samples that call the OpenAI platform.
type OpenAISettings struct {
	APIKey string
	Model  string
	Prompt string
}

// ManagementSettings configures project provisioning.
type ManagementSettings struct {
	SubscriptionID string
	ResourceGroup  string
	ResourceName   string
	ProjectName    string
	Location       string
	Credential     credential.Settings
}

// DeploymentsSettings configures the deployment listing sample.
type DeploymentsSettings struct {
	ProjectEndpoint string
	Credential      credential.Settings
}

// LoadCredential reads the credential inputs. None of them are required.
func LoadCredential(r *Resolver) credential.Settings {
	return credential.Settings{
		APIKey:       r.First(EnvAzureAIAPIKey, EnvAzureAPIKey),
		TenantID:     r.First(EnvTenantID),
		ClientID:     r.First(EnvClientID),
		ClientSecret: r.First(EnvClientSecret),
	}
}

func requireProjectEndpoint(r *Resolver) (string, error) {
	return r.Require(EnvProjectEndpoint, EnvAzureEndpoint)
}

// LoadAgent resolves settings for the basic agent sample.
func LoadAgent(r *Resolver) (AgentSettings, error) {
	endpoint, err := requireProjectEndpoint(r)
	if err != nil {
		return AgentSettings{}, err
	}
	return AgentSettings{
		ProjectEndpoint: endpoint,
		Model:           r.Optional(EnvModelDeploymentName, DefaultModel, EnvAzureDeployment),
		AgentName:       r.Optional(EnvAgentName, DefaultAgentName),
		Instructions:    r.Optional(EnvAgentInstructions, DefaultAgentInstructions),
		Credential:      LoadCredential(r),
	}, nil
}

// LoadFileSearch resolves settings for the file search sample.
func LoadFileSearch(r *Resolver) (AgentSettings, error) {
	endpoint, err := requireProjectEndpoint(r)
	if err != nil {
		return AgentSettings{}, err
	}
	return AgentSettings{
		ProjectEndpoint: endpoint,
		Model:           r.Optional(EnvModelDeploymentName, DefaultModel, EnvAzureDeployment),
		AgentName:       r.Optional(EnvAgentName, DefaultFileSearchAgentName),
		Instructions:    r.Optional(EnvAgentInstructions, "You are a document assistant. Help users find information in their documents."),
		Credential:      LoadCredential(r),
	}, nil
}

// LoadEvaluation resolves settings for the agent evaluation sample.
func LoadEvaluation(r *Resolver) (AgentSettings, error) {
	endpoint, err := requireProjectEndpoint(r)
	if err != nil {
		return AgentSettings{}, err
	}
	return AgentSettings{
		ProjectEndpoint: endpoint,
		Model:           r.Optional(EnvModelDeploymentName, DefaultModel, EnvAzureDeployment),
		AgentName:       r.Optional(EnvAgentName, DefaultEvaluationAgentName),
		Instructions:    r.Optional(EnvAgentInstructions, "You are a weather assistant. Provide accurate and helpful information about weather conditions."),
		Credential:      LoadCredential(r),
	}, nil
}

// LoadInference resolves settings for the inference chat samples.
func LoadInference(r *Resolver) (InferenceSettings, error) {
	endpoint, err := requireProjectEndpoint(r)
	if err != nil {
		return InferenceSettings{}, err
	}
	return InferenceSettings{
		Endpoint:   endpoint,
		Deployment: r.Optional(EnvAzureModelDeploymentName, DefaultInferenceDeployment),
		APIPath:    r.Optional(EnvModelAPIPath, DefaultAPIPath),
		Prompt:     r.Optional(EnvChatPrompt, DefaultPrompt),
		Credential: LoadCredential(r),
	}, nil
}

// LoadChat resolves settings for chat through a project's Azure OpenAI
// deployment.
func LoadChat(r *Resolver) (ChatSettings, error) {
	endpoint, err := requireProjectEndpoint(r)
	if err != nil {
		return ChatSettings{}, err
	}
	return ChatSettings{
		ProjectEndpoint: endpoint,
		Deployment:      r.Optional(EnvModelDeploymentName, DefaultModel, EnvAzureDeployment),
		Prompt:          r.Optional(EnvChatPrompt, DefaultPrompt),
		Credential:      LoadCredential(r),
	}, nil
}

// LoadOpenAI resolves settings for the OpenAI platform samples. Both the key
// and the model are required.
func LoadOpenAI(r *Resolver) (OpenAISettings, error) {
	key, err := r.Require(EnvOpenAIAPIKey)
	if err != nil {
		return OpenAISettings{}, err
	}
	model, err := r.Require(EnvOpenAIModel)
	if err != nil {
		return OpenAISettings{}, err
	}
	return OpenAISettings{
		APIKey: key,
		Model:  model,
		Prompt: r.Optional(EnvChatPrompt, DefaultPrompt),
	}, nil
}

// LoadManagement resolves settings for project provisioning.
func LoadManagement(r *Resolver) (ManagementSettings, error) {
	var s ManagementSettings
	var err error
	if s.SubscriptionID, err = r.Require(EnvSubscriptionID); err != nil {
		return ManagementSettings{}, err
	}
	if s.ResourceGroup, err = r.Require(EnvResourceGroup); err != nil {
		return ManagementSettings{}, err
	}
	if s.ResourceName, err = r.Require(EnvResourceName); err != nil {
		return ManagementSettings{}, err
	}
	s.ProjectName = r.Optional(EnvProjectName, DefaultProjectName)
	s.Location = r.Optional(EnvLocation, DefaultLocation)
	s.Credential = LoadCredential(r)
	return s, nil
}

// LoadDeployments resolves settings for listing model deployments.
func LoadDeployments(r *Resolver) (DeploymentsSettings, error) {
	endpoint, err := requireProjectEndpoint(r)
	if err != nil {
		return DeploymentsSettings{}, err
	}
	return DeploymentsSettings{
		ProjectEndpoint: endpoint,
		Credential:      LoadCredential(r),
	}, nil
}
