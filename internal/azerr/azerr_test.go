// Copyright (c) Microsoft. All rights reserved.

package azerr_test

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
	"github.com/azure-ai-foundry/foundry-samples/go/internal/azerr"
)

func response(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	req, _ := http.NewRequest(http.MethodGet, "https://example.test/x", nil)
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name     string
		resp     *http.Response
		code     string
		message  string
		sentinel error
	}{
		{
			name:     "error envelope",
			resp:     response(http.StatusNotFound, `{"error":{"code":"NotFound","message":"No assistant found with id 'asst_x'."}}`, nil),
			code:     "NotFound",
			message:  "No assistant found with id 'asst_x'.",
			sentinel: foundry.ErrNotFound,
		},
		{
			name:     "header code and plain body",
			resp:     response(http.StatusForbidden, "forbidden", http.Header{"X-Ms-Error-Code": {"AuthorizationFailed"}}),
			code:     "AuthorizationFailed",
			message:  "forbidden",
			sentinel: foundry.ErrAuth,
		},
		{
			name:     "empty body",
			resp:     response(http.StatusInternalServerError, "", nil),
			message:  "Internal Server Error",
			sentinel: foundry.ErrService,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := azerr.FromResponse(tc.resp)
			var svcErr *foundry.ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("err = %T", err)
			}
			if svcErr.Code != tc.code || svcErr.Message != tc.message {
				t.Errorf("got code=%q message=%q", svcErr.Code, svcErr.Message)
			}
			if !errors.Is(err, tc.sentinel) {
				t.Errorf("err = %v, want %v", err, tc.sentinel)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	respErr := runtime.NewResponseError(response(http.StatusTooManyRequests, `{"error":{"code":"TooManyRequests","message":"slow down"}}`, nil))
	err := azerr.Convert(respErr)
	if !errors.Is(err, foundry.ErrRateLimit) {
		t.Fatalf("err = %v, want ErrRateLimit", err)
	}
	if got := foundry.StatusCode(err); got != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", got)
	}

	plain := errors.New("dial tcp: no such host")
	if got := azerr.Convert(plain); got != plain {
		t.Errorf("Convert(plain) = %v", got)
	}
}
