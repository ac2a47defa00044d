package testutil

import (
	"context"

	"github.com/billforge/billforge/internal/cache"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/logger"
	"github.com/billforge/billforge/internal/pubsub"
	"github.com/billforge/billforge/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores bundles the in-memory repositories used by service tests.
type Stores struct {
	TenantRepo  *InMemoryTenantStore
	BillingRepo *InMemoryBillingStore
	AuditRepo   *InMemoryAuditLogStore
}

// NewStores creates a linked set of in-memory stores.
func NewStores() Stores {
	tenants := NewInMemoryTenantStore()
	return Stores{
		TenantRepo:  tenants,
		BillingRepo: NewInMemoryBillingStore(tenants),
		AuditRepo:   NewInMemoryAuditLogStore(),
	}
}

// BaseServiceTestSuite provides common setup for service tests: a context
// with a test actor, default configuration, a logger, linked in-memory
// stores, an in-process event bus, and a cache.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	logger *logger.Logger
	stores Stores
	bus    pubsub.PubSub
	cache  cache.Cache
}

// SetupTest initializes the test environment before each test.
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = types.SetUserID(context.Background(), "user_test")
	s.cfg = config.GetDefaultConfig()
	s.logger = logger.GetLogger()
	s.stores = NewStores()
	s.bus = pubsub.NewGoChannelPubSub()
	s.cache = cache.NewInMemoryCache()
}

// TearDownTest cleans up after each test.
func (s *BaseServiceTestSuite) TearDownTest() {
	if s.bus != nil {
		_ = s.bus.Close()
	}
}

// GetContext returns the test context with the test actor set.
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration.
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger.
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns the in-memory stores.
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPubSub returns the in-process event bus.
func (s *BaseServiceTestSuite) GetPubSub() pubsub.PubSub {
	return s.bus
}

// GetCache returns the in-memory cache.
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}
