package rest

import (
	"context"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// AuditSink forwards activity entries to the API's activity log endpoint.
// Typically wrapped by the queue.AuditDispatcher so callers never wait on it.
type AuditSink struct {
	client *Client
}

func NewAuditSink(c *Client) *AuditSink {
	return &AuditSink{client: c}
}

func (s *AuditSink) Append(ctx context.Context, entry domain.ActivityEntry) error {
	return s.client.do(ctx, "POST", "/logs/activity", entry, nil)
}
