package handlers

import "context"

const livenessMessage = "URL Shortener API is running"

// Root answers the bare liveness probe at "/".
func Root(_ context.Context, _ *struct{}) (*TextResponse, error) {
	return &TextResponse{
		ContentType: textPlain,
		Body:        []byte(livenessMessage),
	}, nil
}
