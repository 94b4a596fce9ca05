// Copyright (c) Microsoft. All rights reserved.

// Package openaiplatform adapts the official openai-go SDK to
// [foundry.ChatClient] for samples that talk to the OpenAI platform
// directly rather than to an Azure deployment.
//
//	client := openaiplatform.New(os.Getenv("OPENAI_API_KEY"), "gpt-4o")
//	resp, err := client.Response(ctx, messages, nil)
package openaiplatform
