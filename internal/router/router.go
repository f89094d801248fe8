package router

import (
	"context"
	"net/http"
	"time"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/api/handler"
	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/config"
	"github.com/biteflow/restaurant-service/internal/middleware"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/biteflow/restaurant-service/internal/websockets"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services are the business services the routes dispatch to
type Services struct {
	Auth    *service.AuthService
	Menu    *service.MenuService
	Cart    *service.CartService
	Order   *service.OrderService
	Booking *service.BookingService
	Upload  *service.UploadService
}

// Router handles HTTP routing
type Router struct {
	mux     *mux.Router
	handler http.Handler
	health  HealthChecker
}

// New creates a new router
func New(cfg config.Server, services Services, hub *websockets.Hub, health HealthChecker) *Router {
	r := &Router{
		mux:    mux.NewRouter(),
		health: health,
	}

	r.mux.NotFoundHandler = api.NotFound()
	r.mux.MethodNotAllowedHandler = api.MethodNotAllowed()

	r.setupRoutes(cfg, services, hub)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	r.handler = middleware.Logger(corsHandler.Handler(r.mux))

	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// setupRoutes sets up the routes for the router
func (r *Router) setupRoutes(cfg config.Server, services Services, hub *websockets.Hub) {
	user := middleware.Authenticate(services.Auth)
	admin := middleware.AdminOnly(services.Auth, services.Auth.AdminEmail())

	authHandler := handler.NewAuthHandler(services.Auth, cfg.Production())
	menuHandler := handler.NewMenuHandler(services.Menu)
	cartHandler := handler.NewCartHandler(services.Cart)
	orderHandler := handler.NewOrderHandler(services.Order)
	bookingHandler := handler.NewBookingHandler(services.Booking)
	uploadHandler := handler.NewUploadHandler(services.Upload)

	r.mux.HandleFunc("/", r.handleRoot).Methods(http.MethodGet)
	r.mux.HandleFunc("/healthz", r.handleHealth).Methods(http.MethodGet)
	r.mux.Handle("/ws", admin(handler.NewWebSocketHandler(hub, cfg.AllowedOrigins))).Methods(http.MethodGet)

	apiRouter := r.mux.PathPrefix("/api").Subrouter()

	auth := apiRouter.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/admin/login", authHandler.AdminLogin).Methods(http.MethodPost)
	auth.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	auth.Handle("/profile", user(http.HandlerFunc(authHandler.Profile))).Methods(http.MethodGet)
	auth.Handle("/is-auth", user(http.HandlerFunc(authHandler.Profile))).Methods(http.MethodGet)
	auth.Handle("/is-admin", admin(http.HandlerFunc(authHandler.IsAdmin))).Methods(http.MethodGet)

	category := apiRouter.PathPrefix("/category").Subrouter()
	category.HandleFunc("/all", menuHandler.ListCategories).Methods(http.MethodGet)
	category.Handle("/add", admin(http.HandlerFunc(menuHandler.AddCategory))).Methods(http.MethodPost)
	category.Handle("/update/{id}", admin(http.HandlerFunc(menuHandler.UpdateCategory))).Methods(http.MethodPut)
	category.Handle("/delete/{id}", admin(http.HandlerFunc(menuHandler.DeleteCategory))).Methods(http.MethodDelete)

	menu := apiRouter.PathPrefix("/menu").Subrouter()
	menu.HandleFunc("/all", menuHandler.ListMenuItems).Methods(http.MethodGet)
	menu.Handle("/add", admin(http.HandlerFunc(menuHandler.AddMenuItem))).Methods(http.MethodPost)
	menu.Handle("/update/{id}", admin(http.HandlerFunc(menuHandler.UpdateMenuItem))).Methods(http.MethodPut)
	menu.Handle("/delete/{id}", admin(http.HandlerFunc(menuHandler.DeleteMenuItem))).Methods(http.MethodDelete)

	cart := apiRouter.PathPrefix("/cart").Subrouter()
	cart.Use(user)
	cart.HandleFunc("/add", cartHandler.AddToCart).Methods(http.MethodPost)
	cart.HandleFunc("/get", cartHandler.GetCart).Methods(http.MethodGet)
	cart.HandleFunc("/remove/{menuId}", cartHandler.RemoveFromCart).Methods(http.MethodDelete)

	order := apiRouter.PathPrefix("/order").Subrouter()
	order.Handle("/place", user(http.HandlerFunc(orderHandler.PlaceOrder))).Methods(http.MethodPost)
	order.Handle("/my-orders", user(http.HandlerFunc(orderHandler.MyOrders))).Methods(http.MethodGet)
	order.Handle("/orders", admin(http.HandlerFunc(orderHandler.AllOrders))).Methods(http.MethodGet)
	order.Handle("/update-status/{orderId}", admin(http.HandlerFunc(orderHandler.UpdateStatus))).Methods(http.MethodPut)

	booking := apiRouter.PathPrefix("/booking").Subrouter()
	booking.Handle("/create", user(http.HandlerFunc(bookingHandler.CreateBooking))).Methods(http.MethodPost)
	booking.Handle("/my-bookings", user(http.HandlerFunc(bookingHandler.MyBookings))).Methods(http.MethodGet)
	booking.Handle("/bookings", admin(http.HandlerFunc(bookingHandler.AllBookings))).Methods(http.MethodGet)
	booking.Handle("/update-status/{bookingId}", admin(http.HandlerFunc(bookingHandler.UpdateStatus))).Methods(http.MethodPut)
	booking.Handle("/{bookingId}/qrcode", user(http.HandlerFunc(bookingHandler.QRCode))).Methods(http.MethodGet)

	apiRouter.HandleFunc("/upload", uploadHandler.Upload).Methods(http.MethodPost)
}

func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) {
	api.Success(w, http.StatusOK, "Restaurant API is running...", nil)
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if r.health != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()

		if err := r.health.HealthCheck(ctx); err != nil {
			api.Error(w, apperr.Internal(err))
			return
		}
	}

	api.Success(w, http.StatusOK, "ok", nil)
}
