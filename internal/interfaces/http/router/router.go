package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podstore/backoffice/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one area before they are registered
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group and its subgroups
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handlers)
}

// Group creates a sub-group within this group
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers are the endpoint handlers served by the API
type Handlers struct {
	Products *handler.ProductHandler
	Users    *handler.UserHandler
	Orders   *handler.OrderHandler
	Email    *handler.EmailHandler
	Rappi    *handler.RappiHandler
	Health   *handler.HealthHandler
}

// Guards are the authentication middleware of each surface
type Guards struct {
	// Dashboard protects the dashboard and email endpoints
	Dashboard gin.HandlerFunc
	// Marketplace checks the user-token header of the webhook
	Marketplace gin.HandlerFunc
	// AuthLimit throttles the marketplace token exchange; nil disables it
	AuthLimit gin.HandlerFunc
}

// MarketplaceRoutes builds the Rappi integration group
func MarketplaceRoutes(h Handlers, g Guards) *DomainGroup {
	rappi := NewDomainGroup("rappi", "/turbo-rappi")
	auth := []gin.HandlerFunc{h.Rappi.Authenticate}
	if g.AuthLimit != nil {
		auth = append([]gin.HandlerFunc{g.AuthLimit}, auth...)
	}
	rappi.POST("", auth...)
	rappi.POST("/orders", g.Marketplace, h.Rappi.ReceiveOrder)
	return rappi
}

// EmailRoutes builds the email group
func EmailRoutes(h Handlers, g Guards) *DomainGroup {
	email := NewDomainGroup("email", "").Use(g.Dashboard)
	email.POST("/send-email", h.Email.Send)
	email.POST("/email/order-summary", h.Email.SendOrderSummary)
	return email
}

// DashboardRoutes builds the dashboard group with its product, user and order actions
func DashboardRoutes(h Handlers, g Guards) *DomainGroup {
	dashboard := NewDomainGroup("dashboard", "/dashboard").Use(g.Dashboard)

	dashboard.Group("products", "/products").
		GET("", h.Products.List).
		POST("", h.Products.Create).
		GET("/:id", h.Products.GetByID).
		PATCH("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete)

	dashboard.Group("users", "/users").
		GET("", h.Users.List).
		POST("", h.Users.Create).
		GET("/:id", h.Users.GetByID).
		PATCH("/:id", h.Users.Update).
		DELETE("/:id", h.Users.Delete)

	dashboard.Group("orders", "/orders").
		GET("", h.Orders.List).
		POST("", h.Orders.Create).
		POST("/sync-tickets", h.Orders.SyncTickets).
		GET("/:id", h.Orders.GetByID).
		DELETE("/:id", h.Orders.Delete)

	return dashboard
}

// Mount registers /health and every API group on engine
func Mount(engine *gin.Engine, h Handlers, g Guards, opts ...RouterOption) {
	engine.GET("/health", h.Health.Check)
	engine.HandleMethodNotAllowed = true

	NewRouter(engine, opts...).
		Register(MarketplaceRoutes(h, g)).
		Register(EmailRoutes(h, g)).
		Register(DashboardRoutes(h, g)).
		Setup()
}

