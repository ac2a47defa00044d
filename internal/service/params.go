package service

import (
	"github.com/billforge/billforge/internal/cache"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/domain/adjustment"
	"github.com/billforge/billforge/internal/domain/auditlog"
	"github.com/billforge/billforge/internal/domain/tenant"
	"github.com/billforge/billforge/internal/logger"
	"github.com/billforge/billforge/internal/pubsub"
)

// ServiceParams holds the dependencies shared by all services.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// TenantRepo is the read-only tenant billing read side.
	TenantRepo tenant.Repository

	// AdjustmentRepo is the billing mutation boundary.
	AdjustmentRepo adjustment.Repository

	// AuditRepo receives immutable records of committed mutations.
	AuditRepo auditlog.Repository

	// EventPublisher carries committed-adjustment events to read-side
	// consumers.
	EventPublisher pubsub.PubSub

	// TenantCache fronts tenant lookups during wizard sessions.
	TenantCache cache.Cache
}
