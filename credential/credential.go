// Copyright (c) Microsoft. All rights reserved.

// Package credential selects and memoizes the credential a sample
// authenticates with: an API key, a service principal secret, or the
// ambient DefaultAzureCredential chain.
package credential

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// Kind identifies which authentication mechanism a [Credential] uses.
type Kind int

const (
	KindKey Kind = iota + 1
	KindClientSecret
	KindDefault
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "api-key"
	case KindClientSecret:
		return "client-secret"
	case KindDefault:
		return "default-azure-credential"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Settings holds the raw inputs for credential selection.
type Settings struct {
	APIKey       string
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Kind reports which mechanism these settings select: a non-blank API key
// first, then a complete tenant/client/secret triple, then the default chain.
func (s Settings) Kind() Kind {
	switch {
	case strings.TrimSpace(s.APIKey) != "":
		return KindKey
	case s.hasClientSecret():
		return KindClientSecret
	default:
		return KindDefault
	}
}

func (s Settings) hasClientSecret() bool {
	return strings.TrimSpace(s.TenantID) != "" &&
		strings.TrimSpace(s.ClientID) != "" &&
		strings.TrimSpace(s.ClientSecret) != ""
}

// Credential is the selected credential. For KindKey, APIKey and Key are
// set; otherwise Token is.
type Credential struct {
	Kind   Kind
	APIKey string
	Key    *azcore.KeyCredential
	Token  azcore.TokenCredential
}

// Provider builds a credential once and hands the same value out on every
// later call. It is safe for concurrent use. A failed construction is not
// cached.
type Provider struct {
	settings        Settings
	logger          *slog.Logger
	newDefault      func() (azcore.TokenCredential, error)
	newClientSecret func(tenantID, clientID, secret string) (azcore.TokenCredential, error)

	mu    sync.Mutex
	cred  *Credential
	token azcore.TokenCredential
}

// Option configures a [Provider].
type Option func(*Provider)

// WithLogger sets the logger used to report which credential was chosen.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// WithDefaultConstructor replaces the DefaultAzureCredential constructor.
func WithDefaultConstructor(fn func() (azcore.TokenCredential, error)) Option {
	return func(p *Provider) { p.newDefault = fn }
}

// WithClientSecretConstructor replaces the ClientSecretCredential constructor.
func WithClientSecretConstructor(fn func(tenantID, clientID, secret string) (azcore.TokenCredential, error)) Option {
	return func(p *Provider) { p.newClientSecret = fn }
}

// NewProvider returns a Provider for settings.
func NewProvider(settings Settings, opts ...Option) *Provider {
	p := &Provider{
		settings: settings,
		logger:   slog.Default(),
		newDefault: func() (azcore.TokenCredential, error) {
			return azidentity.NewDefaultAzureCredential(nil)
		},
		newClientSecret: func(tenantID, clientID, secret string) (azcore.TokenCredential, error) {
			return azidentity.NewClientSecretCredential(tenantID, clientID, secret, nil)
		},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Get returns the credential selected by the provider's settings.
func (p *Provider) Get() (*Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cred != nil {
		return p.cred, nil
	}

	if p.settings.Kind() == KindKey {
		p.logger.Info("Authenticating using API key")
		key := strings.TrimSpace(p.settings.APIKey)
		p.cred = &Credential{
			Kind:   KindKey,
			APIKey: key,
			Key:    azcore.NewKeyCredential(key),
		}
		return p.cred, nil
	}

	token, kind, err := p.tokenLocked()
	if err != nil {
		return nil, err
	}
	p.cred = &Credential{Kind: kind, Token: token}
	return p.cred, nil
}

// Token returns a Microsoft Entra token credential, ignoring any API key.
// Operations that only accept bearer tokens, such as resource management,
// use it.
func (p *Provider) Token() (azcore.TokenCredential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	token, _, err := p.tokenLocked()
	return token, err
}

func (p *Provider) tokenLocked() (azcore.TokenCredential, Kind, error) {
	kind := KindDefault
	if p.settings.hasClientSecret() {
		kind = KindClientSecret
	}
	if p.token != nil {
		return p.token, kind, nil
	}

	var (
		token azcore.TokenCredential
		err   error
	)
	if kind == KindClientSecret {
		p.logger.Info("Authenticating using client secret credential", "tenant_id", p.settings.TenantID, "client_id", p.settings.ClientID)
		token, err = p.newClientSecret(p.settings.TenantID, p.settings.ClientID, p.settings.ClientSecret)
	} else {
		p.logger.Info("Authenticating using DefaultAzureCredential")
		token, err = p.newDefault()
	}
	if err != nil {
		return nil, kind, fmt.Errorf("%w: create %s credential: %w", foundry.ErrAuth, kind, err)
	}
	if token == nil {
		return nil, kind, fmt.Errorf("%w: create %s credential: %w", foundry.ErrAuth, kind, errors.New("constructor returned nil"))
	}
	p.token = token
	return token, kind, nil
}
