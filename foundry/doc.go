// Copyright (c) Microsoft. All rights reserved.

// Package foundry holds the types shared by every quickstart in this module:
// chat messages and options, chat responses and streaming updates, the
// [ChatClient] interface, and the error model used to classify failures.
//
// # Chat
//
// A [ChatClient] sends a conversation to a model deployment:
//
//	client := openai.New(key, openai.WithBaseURL(endpoint), openai.WithAPIKeyHeader())
//
//	resp, err := client.Response(ctx, []foundry.Message{
//	    foundry.NewSystemMessage("You are a helpful assistant."),
//	    foundry.NewUserMessage("Tell me about Azure AI Foundry."),
//	}, &foundry.ChatOptions{
//	    Temperature: foundry.Ptr(0.7),
//	    MaxTokens:   foundry.Ptr(800),
//	})
//
// Streaming responses are consumed through [ResponseStream]:
//
//	stream, err := client.StreamResponse(ctx, msgs, nil)
//	defer stream.Close()
//	err = stream.Each(ctx, func(u foundry.ChatResponseUpdate) error {
//	    fmt.Print(u.Text)
//	    return nil
//	})
//
// # Errors
//
// Failures are classified with sentinel errors ([ErrConfig], [ErrService],
// [ErrAuth], [ErrNotFound], [ErrRateLimit], ...) and a [ServiceError] that
// carries the HTTP status code of a failed remote call:
//
//	var svcErr *foundry.ServiceError
//	if errors.As(err, &svcErr) {
//	    log.Printf("status %d: %s", svcErr.StatusCode, svcErr.Hint())
//	}
package foundry
