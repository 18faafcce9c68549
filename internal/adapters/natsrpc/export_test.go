package natsrpc

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// ClassifyTransportErr exposes outcome classification to tests.
func ClassifyTransportErr(ctx context.Context, err error) (domain.CallOutcome, error) {
	return classifyTransportErr(ctx, err)
}

// Wire types exposed to tests.
type (
	Reply         = reply
	AttachRequest = attachRequest
)

// Reply codes exposed to tests.
const (
	CodeProtocolViolation = codeProtocolViolation
	CodeInternal          = codeInternal
)
