// Copyright (c) Microsoft. All rights reserved.

package main

import (
	"testing"

	"github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"
)

func TestRootCmd_HasEverySample(t *testing.T) {
	root := newRootCmd()
	for _, s := range quickstart.Samples {
		cmd, _, err := root.Find([]string{s.Name})
		if err != nil || cmd.Name() != s.Name {
			t.Errorf("subcommand %q not found: %v", s.Name, err)
		}
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"chat", "extra"})
	if err := root.Execute(); err == nil {
		t.Error("expected an error for unexpected arguments")
	}
}
