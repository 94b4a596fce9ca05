// Copyright (c) Microsoft. All rights reserved.

package quickstart

import (
	"errors"
	"log/slog"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// Report logs err the way a sample's top level reports failure and returns
// it unchanged. A nil err is not logged.
func Report(logger *slog.Logger, err error) error {
	if err == nil {
		return nil
	}
	var svcErr *foundry.ServiceError
	switch {
	case errors.Is(err, foundry.ErrConfig):
		logger.Error("Environment variables not configured", "error", err)
		logger.Error("Please set your environment variables or create a .env file. See README.md for details.")
	case errors.As(err, &svcErr):
		attrs := []any{"status", svcErr.StatusCode, "error", svcErr.Message}
		if svcErr.Code != "" {
			attrs = append(attrs, "code", svcErr.Code)
		}
		logger.Error("Service error", attrs...)
		if hint := svcErr.Hint(); hint != "" {
			logger.Error(hint)
		}
	case errors.Is(err, foundry.ErrAuth):
		logger.Error("Authentication failed", "error", err)
		logger.Error("Sign in with 'az login' or set AZURE_TENANT_ID, AZURE_CLIENT_ID and AZURE_CLIENT_SECRET.")
	case errors.Is(err, foundry.ErrPollTimeout):
		logger.Error("Gave up waiting for the operation to finish", "error", err)
	default:
		logger.Error("Error", "error", err)
	}
	return err
}
