// Copyright (c) Microsoft. All rights reserved.

// Package quickstart implements the quickstart samples as functions over an
// explicit [Env]. The programs under samples/ and cmd/ only build an Env and
// call them.
package quickstart

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"

	"github.com/azure-ai-foundry/foundry-samples/go/config"
	"github.com/azure-ai-foundry/foundry-samples/go/credential"
	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
	"github.com/azure-ai-foundry/foundry-samples/go/management"
	"github.com/azure-ai-foundry/foundry-samples/go/openai"
	"github.com/azure-ai-foundry/foundry-samples/go/openaiplatform"
	"github.com/azure-ai-foundry/foundry-samples/go/present"
	"github.com/azure-ai-foundry/foundry-samples/go/projects"
)

// Env carries everything a sample needs. The zero value is not usable; build
// one with [NewEnv] or fill every field except the optional overrides.
type Env struct {
	Config *config.Resolver
	Logger *slog.Logger
	Out    *present.Presenter

	// Credentials builds the credential provider for resolved settings.
	Credentials func(credential.Settings) *credential.Provider

	// HTTPClient, when set, carries every outbound request. Tests use it to
	// stub the services.
	HTTPClient *http.Client

	// Poll controls run, vector store and evaluation polling.
	Poll *projects.PollOptions

	// Wait controls resource provisioning polling.
	Wait *management.WaitOptions
}

// NewEnv resolves configuration from the environment, .env and an optional
// YAML file, and writes results to out.
func NewEnv(logger *slog.Logger, out io.Writer) (*Env, error) {
	r, err := config.Load(logger)
	if err != nil {
		return nil, err
	}
	return &Env{
		Config: r,
		Logger: logger,
		Out:    present.New(out),
		Credentials: func(s credential.Settings) *credential.Provider {
			return credential.NewProvider(s, credential.WithLogger(logger))
		},
	}, nil
}

func (e *Env) clientOptions() azcore.ClientOptions {
	var o azcore.ClientOptions
	if e.HTTPClient != nil {
		o.Transport = e.HTTPClient
	}
	return o
}

func (e *Env) projectClient(endpoint string, s credential.Settings) (*projects.Client, error) {
	cred, err := e.Credentials(s).Get()
	if err != nil {
		return nil, err
	}
	e.Logger.Info("Creating project client", "endpoint", endpoint, "auth", cred.Kind)
	return projects.NewClientFromCredential(endpoint, cred, &projects.ClientOptions{
		ClientOptions: e.clientOptions(),
		Logger:        e.Logger,
	})
}

func (e *Env) managementClient(subscriptionID string, s credential.Settings) (*management.Client, error) {
	token, err := e.Credentials(s).Token()
	if err != nil {
		return nil, err
	}
	return management.NewClient(subscriptionID, token, &management.ClientOptions{
		ClientOptions: arm.ClientOptions{ClientOptions: e.clientOptions()},
		Logger:        e.Logger,
	})
}

func (e *Env) openAIOptions(opts ...openai.Option) []openai.Option {
	opts = append(opts, openai.WithChatMiddleware(foundry.LoggingMiddleware(e.Logger)))
	if e.HTTPClient != nil {
		opts = append(opts, openai.WithHTTPClient(e.HTTPClient))
	}
	return opts
}

func (e *Env) platformOptions() []openaiplatform.Option {
	opts := []openaiplatform.Option{openaiplatform.WithChatMiddleware(foundry.LoggingMiddleware(e.Logger))}
	if e.HTTPClient != nil {
		opts = append(opts, openaiplatform.WithHTTPClient(e.HTTPClient))
	}
	return opts
}
