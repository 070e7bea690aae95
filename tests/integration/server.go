package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/podstore/backoffice/internal/application/catalog"
	identityapp "github.com/podstore/backoffice/internal/application/identity"
	"github.com/podstore/backoffice/internal/application/integration"
	"github.com/podstore/backoffice/internal/application/notification"
	tradeapp "github.com/podstore/backoffice/internal/application/trade"
	"github.com/podstore/backoffice/internal/infrastructure/auth"
	"github.com/podstore/backoffice/internal/infrastructure/config"
	"github.com/podstore/backoffice/internal/infrastructure/mail"
	"github.com/podstore/backoffice/internal/infrastructure/persistence"
	"github.com/podstore/backoffice/internal/infrastructure/rappi"
	"github.com/podstore/backoffice/internal/infrastructure/storage"
	"github.com/podstore/backoffice/internal/infrastructure/templates"
	"github.com/podstore/backoffice/internal/interfaces/http/handler"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
	"github.com/podstore/backoffice/internal/interfaces/http/router"
)

// DashboardUserID owns everything created through the dashboard in these tests
const DashboardUserID = "user_2nDNdBES1ULEWhiCitoBnGFKQzi"

// recordingSender keeps every message instead of sending it
type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (s *recordingSender) Send(_ context.Context, msg mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) Sent() []mail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mail.Message(nil), s.sent...)
}

// TestServer is the full HTTP stack over a real database
type TestServer struct {
	DB       *TestDB
	Engine   *gin.Engine
	Mail     *recordingSender
	Archive  *storage.MemoryObjectStorage
	Sessions *auth.SessionVerifier
	Tokens   *auth.MarketplaceTokenService
}

// NewTestServer wires the server the way cmd/server does. rappiAPI is the
// base URL of the marketplace order API; it may be empty.
func NewTestServer(t *testing.T, rappiAPI string) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	tdb := NewTestDB(t)
	log := zap.NewNop()

	rappiCfg := config.RappiConfig{
		TokenSecret: "integration-rappi-secret",
		TokenExpiry: time.Hour,
		TokenIssuer: "podstore-test",
		APIBaseURL:  rappiAPI,
		APIToken:    "rappi-api-token",
		APITimeout:  5 * time.Second,
	}
	sessions := auth.NewSessionVerifier(config.DashboardConfig{SessionSecret: "integration-session-secret", Issuer: "clerk-test"})
	tokens := auth.NewMarketplaceTokenService(rappiCfg)

	renderer, err := templates.NewEngine(templates.Company{CompanyName: "Pod Store", ContactEmail: "hola@podstore.mx"})
	require.NoError(t, err)
	sender := &recordingSender{}
	archive := storage.NewMemoryObjectStorage()

	productRepo := persistence.NewGormProductRepository(tdb.DB)
	userRepo := persistence.NewGormUserRepository(tdb.DB)
	orderRepo := persistence.NewGormOrderRepository(tdb.DB)

	emailService := notification.NewEmailService(sender, renderer, nil, log)
	ticketSync := integration.NewTicketSyncService(rappi.NewClient(rappiCfg, log), emailService, archive, "tickets", nil, log)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.Mount(engine, router.Handlers{
		Products: handler.NewProductHandler(catalogapp.NewProductService(productRepo)),
		Users:    handler.NewUserHandler(identityapp.NewUserService(userRepo, nil, log)),
		Orders:   handler.NewOrderHandler(tradeapp.NewOrderService(orderRepo, productRepo, log), ticketSync),
		Email:    handler.NewEmailHandler(emailService),
		Rappi: handler.NewRappiHandler(
			integration.NewMarketplaceAuthService(userRepo, tokens, log),
			integration.NewOrderIngestionService(orderRepo, productRepo, emailService, nil, log),
		),
		Health: handler.NewHealthHandler(&persistence.Database{DB: tdb.DB}),
	}, router.Guards{
		Dashboard:   middleware.DashboardAuth(sessions),
		Marketplace: middleware.MarketplaceToken(tokens),
	})

	return &TestServer{
		DB:       tdb,
		Engine:   engine,
		Mail:     sender,
		Archive:  archive,
		Sessions: sessions,
		Tokens:   tokens,
	}
}

// DashboardToken signs a session for DashboardUserID
func (s *TestServer) DashboardToken(t *testing.T) string {
	t.Helper()
	token, err := s.Sessions.Sign(DashboardUserID, "admin@podstore.mx", "ADMIN", time.Hour)
	require.NoError(t, err)
	return token
}

