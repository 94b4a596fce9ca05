// Copyright (c) Microsoft. All rights reserved.

package projects

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
)

// FilePurpose is the intended use of an uploaded file.
type FilePurpose string

const (
	FilePurposeAgents       FilePurpose = "assistants"
	FilePurposeAgentsOutput FilePurpose = "assistants_output"
	FilePurposeFineTune     FilePurpose = "fine-tune"
	FilePurposeBatch        FilePurpose = "batch"
	FilePurposeVision       FilePurpose = "vision"
)

// File is an uploaded file.
type File struct {
	ID        string      `json:"id"`
	Object    string      `json:"object,omitempty"`
	Bytes     int64       `json:"bytes"`
	CreatedAt int64       `json:"created_at"`
	Filename  string      `json:"filename"`
	Purpose   FilePurpose `json:"purpose"`
	Status    string      `json:"status,omitempty"`
}

// FilesClient manages files and vector stores.
type FilesClient struct {
	c *Client
}

// UploadFile uploads the contents of r as a multipart form under filename.
func (f *FilesClient) UploadFile(ctx context.Context, filename string, r io.Reader, purpose FilePurpose) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	req, err := f.c.newRequest(ctx, http.MethodPost, "files", nil)
	if err != nil {
		return nil, err
	}
	err = runtime.SetMultipartFormData(req, map[string]any{
		"purpose": string(purpose),
		"file": streaming.MultipartContent{
			Body:     streaming.NopCloser(bytes.NewReader(data)),
			Filename: filename,
		},
	})
	if err != nil {
		return nil, err
	}
	var out File
	if err := f.c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFile fetches file metadata.
func (f *FilesClient) GetFile(ctx context.Context, fileID string) (*File, error) {
	var out File
	if err := f.c.call(ctx, http.MethodGet, "files/"+url.PathEscape(fileID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFile deletes an uploaded file.
func (f *FilesClient) DeleteFile(ctx context.Context, fileID string) (*DeletionStatus, error) {
	return f.c.delete(ctx, "files/"+url.PathEscape(fileID))
}

// VectorStoreStatus is the indexing state of a vector store.
type VectorStoreStatus string

const (
	VectorStoreStatusInProgress VectorStoreStatus = "in_progress"
	VectorStoreStatusCompleted  VectorStoreStatus = "completed"
	VectorStoreStatusExpired    VectorStoreStatus = "expired"
)

// VectorStoreFileCounts tallies the files of a vector store by state.
type VectorStoreFileCounts struct {
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}

// VectorStore is a searchable index over uploaded files.
type VectorStore struct {
	ID         string                `json:"id"`
	Object     string                `json:"object,omitempty"`
	CreatedAt  int64                 `json:"created_at"`
	Name       string                `json:"name"`
	Status     VectorStoreStatus     `json:"status"`
	FileCounts VectorStoreFileCounts `json:"file_counts"`
	UsageBytes int64                 `json:"usage_bytes,omitempty"`
}

// CreateVectorStoreOptions are the parameters of [FilesClient.CreateVectorStore].
type CreateVectorStoreOptions struct {
	Name     string            `json:"name,omitempty"`
	FileIDs  []string          `json:"file_ids,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateVectorStore creates a vector store over the given files. Indexing
// continues server-side; see [FilesClient.WaitForVectorStore].
func (f *FilesClient) CreateVectorStore(ctx context.Context, opts CreateVectorStoreOptions) (*VectorStore, error) {
	var out VectorStore
	if err := f.c.call(ctx, http.MethodPost, "vector_stores", nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVectorStore fetches a vector store.
func (f *FilesClient) GetVectorStore(ctx context.Context, vectorStoreID string) (*VectorStore, error) {
	var out VectorStore
	if err := f.c.call(ctx, http.MethodGet, "vector_stores/"+url.PathEscape(vectorStoreID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForVectorStore polls until the vector store has finished indexing.
func (f *FilesClient) WaitForVectorStore(ctx context.Context, vectorStoreID string, opts *PollOptions) (*VectorStore, error) {
	return PollUntil(ctx,
		func(ctx context.Context) (*VectorStore, error) { return f.GetVectorStore(ctx, vectorStoreID) },
		func(vs *VectorStore) bool { return vs.Status == VectorStoreStatusInProgress },
		opts,
	)
}

// DeleteVectorStore deletes a vector store. Its files are left in place.
func (f *FilesClient) DeleteVectorStore(ctx context.Context, vectorStoreID string) (*DeletionStatus, error) {
	return f.c.delete(ctx, "vector_stores/"+url.PathEscape(vectorStoreID))
}
