// Copyright (c) Microsoft. All rights reserved.

package credential_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/azure-ai-foundry/foundry-samples/go/credential"
	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

type fakeToken struct{ name string }

func (f *fakeToken) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: f.name}, nil
}

type constructors struct {
	mu            sync.Mutex
	defaultCalls  int
	secretCalls   int
	defaultErr    error
	lastSecretArg [3]string
}

func (c *constructors) options() []credential.Option {
	return []credential.Option{
		credential.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		credential.WithDefaultConstructor(func() (azcore.TokenCredential, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.defaultCalls++
			if c.defaultErr != nil {
				return nil, c.defaultErr
			}
			return &fakeToken{name: "default"}, nil
		}),
		credential.WithClientSecretConstructor(func(tenantID, clientID, secret string) (azcore.TokenCredential, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.secretCalls++
			c.lastSecretArg = [3]string{tenantID, clientID, secret}
			return &fakeToken{name: "secret"}, nil
		}),
	}
}

func TestSettings_Kind(t *testing.T) {
	tests := []struct {
		name     string
		settings credential.Settings
		want     credential.Kind
	}{
		{"api key wins", credential.Settings{APIKey: "k", TenantID: "t", ClientID: "c", ClientSecret: "s"}, credential.KindKey},
		{"blank api key ignored", credential.Settings{APIKey: "   ", TenantID: "t", ClientID: "c", ClientSecret: "s"}, credential.KindClientSecret},
		{"partial triple", credential.Settings{TenantID: "t", ClientID: "c"}, credential.KindDefault},
		{"nothing", credential.Settings{}, credential.KindDefault},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.settings.Kind(); got != tc.want {
				t.Errorf("Kind = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProvider_APIKeyPreferredOverAmbientChain(t *testing.T) {
	var c constructors
	p := credential.NewProvider(credential.Settings{APIKey: " key-123 "}, c.options()...)

	cred, err := p.Get()
	if err != nil {
		t.Fatal(err)
	}
	if cred.Kind != credential.KindKey || cred.Key == nil || cred.Token != nil {
		t.Fatalf("cred = %+v, want key credential", cred)
	}
	if cred.APIKey != "key-123" {
		t.Errorf("APIKey = %q, want trimmed key", cred.APIKey)
	}
	if c.defaultCalls != 0 || c.secretCalls != 0 {
		t.Errorf("constructors called: default=%d secret=%d", c.defaultCalls, c.secretCalls)
	}
}

func TestProvider_ClientSecret(t *testing.T) {
	var c constructors
	p := credential.NewProvider(credential.Settings{TenantID: "t", ClientID: "c", ClientSecret: "s"}, c.options()...)

	cred, err := p.Get()
	if err != nil {
		t.Fatal(err)
	}
	if cred.Kind != credential.KindClientSecret {
		t.Fatalf("Kind = %v", cred.Kind)
	}
	if c.lastSecretArg != [3]string{"t", "c", "s"} {
		t.Errorf("secret args = %v", c.lastSecretArg)
	}
	if c.defaultCalls != 0 {
		t.Errorf("default constructor called %d times", c.defaultCalls)
	}
}

func TestProvider_FallsBackToDefaultChain(t *testing.T) {
	var c constructors
	p := credential.NewProvider(credential.Settings{}, c.options()...)

	cred, err := p.Get()
	if err != nil {
		t.Fatal(err)
	}
	if cred.Kind != credential.KindDefault || cred.Token == nil {
		t.Fatalf("cred = %+v, want default token credential", cred)
	}
	if c.defaultCalls != 1 {
		t.Errorf("default constructor called %d times, want 1", c.defaultCalls)
	}
}

func TestProvider_Memoizes(t *testing.T) {
	var c constructors
	p := credential.NewProvider(credential.Settings{}, c.options()...)

	var wg sync.WaitGroup
	creds := make([]*credential.Credential, 8)
	for i := range creds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			creds[i], _ = p.Get()
		}(i)
	}
	wg.Wait()

	for i, cred := range creds {
		if cred != creds[0] {
			t.Errorf("creds[%d] differs from creds[0]", i)
		}
	}
	if _, err := p.Token(); err != nil {
		t.Fatal(err)
	}
	if c.defaultCalls != 1 {
		t.Errorf("default constructor called %d times, want 1", c.defaultCalls)
	}
}

func TestProvider_TokenIgnoresAPIKey(t *testing.T) {
	var c constructors
	p := credential.NewProvider(credential.Settings{APIKey: "k"}, c.options()...)

	token, err := p.Token()
	if err != nil {
		t.Fatal(err)
	}
	if ft, ok := token.(*fakeToken); !ok || ft.name != "default" {
		t.Errorf("token = %#v, want default chain", token)
	}
}

func TestProvider_ConstructionError(t *testing.T) {
	c := constructors{defaultErr: errors.New("no ambient login found")}
	p := credential.NewProvider(credential.Settings{}, c.options()...)

	_, err := p.Get()
	if !errors.Is(err, foundry.ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}
	if !errors.Is(err, c.defaultErr) {
		t.Errorf("err = %v, want underlying error in chain", err)
	}
}
