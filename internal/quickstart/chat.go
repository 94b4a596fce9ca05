// Copyright (c) Microsoft. All rights reserved.

package quickstart

import (
	"context"

	"github.com/azure-ai-foundry/foundry-samples/go/config"
	"github.com/azure-ai-foundry/foundry-samples/go/credential"
	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
	"github.com/azure-ai-foundry/foundry-samples/go/openai"
	"github.com/azure-ai-foundry/foundry-samples/go/openaiplatform"
)

const systemPrompt = "You are a helpful assistant."

// chatOptions are the sampling settings every chat sample uses.
func chatOptions() *foundry.ChatOptions {
	return &foundry.ChatOptions{
		Temperature: foundry.Ptr(0.7),
		MaxTokens:   foundry.Ptr(800),
	}
}

func chatMessages(prompt string) []foundry.Message {
	return []foundry.Message{
		foundry.NewSystemMessage(systemPrompt),
		foundry.NewUserMessage(prompt),
	}
}

// inferenceClient builds a client for an Azure AI inference deployment,
// authenticating with the api-key header or a Microsoft Entra token.
func (e *Env) inferenceClient(s config.InferenceSettings) (*openai.Client, error) {
	cred, err := e.Credentials(s.Credential).Get()
	if err != nil {
		return nil, err
	}
	endpoint := openai.InferenceEndpoint(s.Endpoint, s.APIPath, s.Deployment)
	e.Logger.Info("Creating chat client", "endpoint", endpoint, "auth", cred.Kind)

	opts := []openai.Option{
		openai.WithBaseURL(endpoint),
		openai.WithAPIVersion(openai.InferenceAPIVersion),
		openai.WithModel(s.Deployment),
	}
	if cred.Kind == credential.KindKey {
		opts = append(opts, openai.WithAPIKeyHeader())
	} else {
		opts = append(opts, openai.WithAzureCredential(cred.Token))
	}
	return openai.New(cred.APIKey, e.openAIOptions(opts...)...), nil
}

// Chat sends one prompt to an Azure AI inference deployment and prints the
// reply with its token usage.
func Chat(ctx context.Context, env *Env) error {
	s, err := config.LoadInference(env.Config)
	if err != nil {
		return err
	}
	client, err := env.inferenceClient(s)
	if err != nil {
		return err
	}
	return complete(ctx, env, client, s.Prompt)
}

// ChatStreaming is [Chat] with the reply printed as it is generated.
func ChatStreaming(ctx context.Context, env *Env) error {
	s, err := config.LoadInference(env.Config)
	if err != nil {
		return err
	}
	client, err := env.inferenceClient(s)
	if err != nil {
		return err
	}
	return stream(ctx, env, client, s.Prompt)
}

// ProjectChat sends one prompt to an Azure OpenAI deployment through the
// project client.
func ProjectChat(ctx context.Context, env *Env) error {
	s, err := config.LoadChat(env.Config)
	if err != nil {
		return err
	}
	project, err := env.projectClient(s.ProjectEndpoint, s.Credential)
	if err != nil {
		return err
	}
	client, err := project.Chat(s.Deployment, openai.WithChatMiddleware(foundry.LoggingMiddleware(env.Logger)))
	if err != nil {
		return err
	}
	return complete(ctx, env, client, s.Prompt)
}

// OpenAIChat sends one prompt to the OpenAI platform.
func OpenAIChat(ctx context.Context, env *Env) error {
	s, err := config.LoadOpenAI(env.Config)
	if err != nil {
		return err
	}
	client := openaiplatform.New(s.APIKey, s.Model, env.platformOptions()...)
	return complete(ctx, env, client, s.Prompt)
}

// OpenAIChatStreaming is [OpenAIChat] with the reply streamed.
func OpenAIChatStreaming(ctx context.Context, env *Env) error {
	s, err := config.LoadOpenAI(env.Config)
	if err != nil {
		return err
	}
	client := openaiplatform.New(s.APIKey, s.Model, env.platformOptions()...)
	return stream(ctx, env, client, s.Prompt)
}

func complete(ctx context.Context, env *Env, client foundry.ChatClient, prompt string) error {
	env.Out.Status("Sending chat completion request...")
	resp, err := client.Response(ctx, chatMessages(prompt), chatOptions())
	if err != nil {
		return err
	}
	env.Out.Completion(resp)
	return nil
}

func stream(ctx context.Context, env *Env, client foundry.ChatClient, prompt string) error {
	env.Out.Status("Sending streaming chat completion request...")
	st, err := client.StreamResponse(ctx, chatMessages(prompt), chatOptions())
	if err != nil {
		return err
	}
	defer st.Close()

	env.Out.BeginStream()
	var usage foundry.UsageDetails
	err = st.Each(ctx, func(u foundry.ChatResponseUpdate) error {
		if u.Text != "" {
			env.Out.Token(u.Text)
		}
		if !u.Usage.IsZero() {
			usage = u.Usage
		}
		return nil
	})
	if err != nil {
		return err
	}
	env.Out.EndStream(usage)
	return nil
}
