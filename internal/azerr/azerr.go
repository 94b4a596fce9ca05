// Copyright (c) Microsoft. All rights reserved.

// Package azerr converts azcore pipeline failures into foundry errors.
package azerr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// FromResponse builds a [foundry.ServiceError] from a failed response. The
// body may use the ARM/data-plane envelope {"error":{"code","message"}}.
func FromResponse(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	body, err := runtime.Payload(resp)
	if err == nil {
		_ = json.Unmarshal(body, &envelope)
	}

	code := envelope.Error.Code
	if code == "" {
		code = resp.Header.Get("x-ms-error-code")
	}
	msg := envelope.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return foundry.NewServiceError(resp.StatusCode, code, msg)
}

// Convert replaces an *azcore.ResponseError in err with the equivalent
// [foundry.ServiceError]. Other errors are returned unchanged.
func Convert(err error) error {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}
	if respErr.RawResponse != nil {
		return FromResponse(respErr.RawResponse)
	}
	return foundry.NewServiceError(respErr.StatusCode, respErr.ErrorCode, respErr.Error())
}
