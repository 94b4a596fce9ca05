// Copyright (c) Microsoft. All rights reserved.

// Command foundry-quickstart runs the Azure AI Foundry quickstart samples.
//
// Each sample is a subcommand:
//
//	foundry-quickstart chat
//	foundry-quickstart agent
//
// Settings come from the environment, a .env file in the working directory,
// and the YAML file named by FOUNDRY_CONFIG. Set DEBUG=true for debug logs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/azure-ai-foundry/foundry-samples/go/internal/logging"
	"github.com/azure-ai-foundry/foundry-samples/go/internal/quickstart"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "foundry-quickstart",
		Short:         "Azure AI Foundry quickstart samples",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, s := range quickstart.Samples {
		root.AddCommand(sampleCmd(s))
	}
	return root
}

func sampleCmd(s quickstart.Sample) *cobra.Command {
	return &cobra.Command{
		Use:   s.Name,
		Short: s.Short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.Setup()
			return quickstart.Execute(cmd.Context(), logger, cmd.OutOrStdout(), s.Run)
		},
	}
}
