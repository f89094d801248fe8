package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/biteflow/restaurant-service/internal/config"
	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/biteflow/restaurant-service/internal/middleware"
	"github.com/biteflow/restaurant-service/internal/mocks"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/biteflow/restaurant-service/internal/websockets"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testOrigin = "http://localhost:5173"
	testSecret = "router-secret"
)

var testAdmin = config.Admin{Email: "admin@biteflow.local", Password: "admin123"}

type fixture struct {
	router     *Router
	auth       *service.AuthService
	users      *mocks.UserRepository
	categories *mocks.CategoryRepository
	menu       *mocks.MenuRepository
	carts      *mocks.CartRepository
	orders     *mocks.OrderRepository
	bookings   *mocks.BookingRepository
	images     *mocks.ImageStore
	cache      *mocks.CatalogCache
	publisher  *mocks.Publisher
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func newFixture(t *testing.T, health HealthChecker) *fixture {
	f := &fixture{
		users:      mocks.NewUserRepository(t),
		categories: mocks.NewCategoryRepository(t),
		menu:       mocks.NewMenuRepository(t),
		carts:      mocks.NewCartRepository(t),
		orders:     mocks.NewOrderRepository(t),
		bookings:   mocks.NewBookingRepository(t),
		images:     mocks.NewImageStore(t),
		cache:      mocks.NewCatalogCache(t),
		publisher:  mocks.NewPublisher(t),
	}

	f.auth = service.NewAuthService(f.users, config.JWT{Secret: testSecret, ExpiresIn: 24}, testAdmin)
	services := Services{
		Auth:    f.auth,
		Menu:    service.NewMenuService(f.categories, f.menu, f.images, f.cache, f.publisher),
		Cart:    service.NewCartService(f.carts, f.menu),
		Order:   service.NewOrderService(f.orders, f.publisher),
		Booking: service.NewBookingService(f.bookings, f.publisher, "https://biteflow.example"),
		Upload:  service.NewUploadService(f.images),
	}

	cfg := config.Server{Mode: "development", AllowedOrigins: []string{testOrigin}}
	f.router = New(cfg, services, websockets.NewHub(), health)
	return f
}

func (f *fixture) userToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := service.Claims{
		ID:               userID.String(),
		Role:             string(models.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (f *fixture) adminToken(t *testing.T) string {
	t.Helper()
	token, err := f.auth.AdminLogin(models.LoginRequest{Email: testAdmin.Email, Password: testAdmin.Password})
	require.NoError(t, err)
	return token
}

func (f *fixture) do(req *http.Request, token string) (*httptest.ResponseRecorder, map[string]any) {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func jsonRequest(method, path string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, path string, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestRouter_RootAndHealth(t *testing.T) {
	f := newFixture(t, healthFunc(func(context.Context) error { return nil }))

	rec, body := f.do(httptest.NewRequest(http.MethodGet, "/", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Restaurant API is running...", body["message"])

	rec, _ = f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newFixture(t, healthFunc(func(context.Context) error { return errors.New("db down") }))
	rec, body = down.do(httptest.NewRequest(http.MethodGet, "/healthz", nil), "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newFixture(t, nil)

	rec, body := f.do(httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestRouter_Gates(t *testing.T) {
	f := newFixture(t, nil)
	userToken := f.userToken(t, uuid.New())
	adminToken := f.adminToken(t)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		status  int
		message string
	}{
		{name: "user route without session", method: http.MethodGet, path: "/api/cart/get", status: http.StatusUnauthorized, message: "Not Authorized"},
		{name: "user route with garbage token", method: http.MethodGet, path: "/api/order/my-orders", token: "garbage", status: http.StatusUnauthorized, message: "Invalid token"},
		{name: "admin session on user route", method: http.MethodGet, path: "/api/booking/my-bookings", token: adminToken, status: http.StatusUnauthorized, message: "Not Authorized"},
		{name: "user session on admin route", method: http.MethodGet, path: "/api/order/orders", token: userToken, status: http.StatusForbidden, message: "Forbidden"},
		{name: "admin route without session", method: http.MethodDelete, path: "/api/menu/delete/" + uuid.NewString(), status: http.StatusUnauthorized, message: "Not Authorized"},
		{name: "live feed without session", method: http.MethodGet, path: "/ws", status: http.StatusUnauthorized, message: "Not Authorized"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rec, body := f.do(httptest.NewRequest(testCase.method, testCase.path, nil), testCase.token)

			assert.Equal(t, testCase.status, rec.Code)
			assert.Equal(t, testCase.message, body["message"])
		})
	}
}

func TestRouter_LoginSetsSessionCookie(t *testing.T) {
	f := newFixture(t, nil)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Name: "Jane", Email: "jane@example.com", PasswordHash: string(hash)}
	f.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	rec, body := f.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "secret1",
	}), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User logged in successfully", body["message"])
	assert.Equal(t, map[string]any{"name": "Jane", "email": "jane@example.com"}, body["user"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	session := cookies[0]
	assert.Equal(t, middleware.TokenCookie, session.Name)
	assert.True(t, session.HttpOnly)
	assert.False(t, session.Secure)
	assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
	assert.Equal(t, int((24 * time.Hour).Seconds()), session.MaxAge)

	rec, body = f.do(httptest.NewRequest(http.MethodGet, "/api/auth/is-auth", nil), session.Value)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := body["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", profile["email"])
	assert.NotContains(t, profile, "password_hash")
	assert.NotContains(t, profile, "PasswordHash")
}

func TestRouter_LogoutClearsCookie(t *testing.T) {
	f := newFixture(t, nil)

	rec, body := f.do(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User logged out successfully", body["message"])
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestRouter_AdminIsAdmin(t *testing.T) {
	f := newFixture(t, nil)

	rec, body := f.do(httptest.NewRequest(http.MethodGet, "/api/auth/is-admin", nil), f.adminToken(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"email": testAdmin.Email, "role": "admin"}, body["admin"])
}

func TestRouter_AddToCart(t *testing.T) {
	f := newFixture(t, nil)
	userID := uuid.New()
	menuID := uuid.New()
	f.menu.On("Exists", mock.Anything, menuID).Return(true, nil)
	f.carts.On("AddItem", mock.Anything, userID, menuID, 2).Return(nil)
	f.carts.On("GetByUser", mock.Anything, userID).
		Return(&models.Cart{UserID: userID, Items: []models.CartItem{{MenuItemID: menuID, Quantity: 2}}}, nil)

	rec, body := f.do(jsonRequest(http.MethodPost, "/api/cart/add", map[string]any{
		"menuId":   menuID.String(),
		"quantity": "2",
	}), f.userToken(t, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item added to cart", body["message"])
	cart := body["cart"].(map[string]any)
	assert.Len(t, cart["items"], 1)
}

func TestRouter_PlaceOrderOnEmptyCart(t *testing.T) {
	f := newFixture(t, nil)
	userID := uuid.New()
	f.orders.On("CreateFromCart", mock.Anything, userID, "1 Queen St", models.DefaultPaymentMethod).
		Return(nil, repository.ErrEmptyCart)

	rec, body := f.do(jsonRequest(http.MethodPost, "/api/order/place", map[string]string{"address": "1 Queen St"}), f.userToken(t, userID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Your cart is empty", body["message"])
}

func TestRouter_AddCategoryMultipart(t *testing.T) {
	f := newFixture(t, nil)
	created := &models.Category{ID: uuid.New(), Name: "Pizza", Image: "https://cdn.example/pizza.png"}
	f.categories.On("ExistsByName", mock.Anything, "Pizza").Return(false, nil)
	f.images.On("Upload", mock.Anything, "categories", mock.MatchedBy(func(img models.ImageUpload) bool {
		return img.Filename == "photo.png"
	})).Return(&models.StoredImage{URL: created.Image}, nil)
	f.categories.On("Create", mock.Anything, models.Category{Name: "Pizza", Image: created.Image}).Return(created, nil)
	f.cache.On("Invalidate", mock.Anything)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(event events.Event) bool {
		return event.Type == events.TypeMenuUpdate
	})).Return(nil)

	req := multipartRequest(t, "/api/category/add", map[string]string{"name": "Pizza"}, []byte("png-bytes"))
	rec, body := f.do(req, f.adminToken(t))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Category added", body["message"])
	assert.Equal(t, "Pizza", body["category"].(map[string]any)["name"])
}

func TestRouter_Upload(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		f := newFixture(t, nil)

		rec, body := f.do(multipartRequest(t, "/api/upload", map[string]string{"note": "x"}, nil), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file uploaded", body["message"])
	})

	t.Run("stored", func(t *testing.T) {
		f := newFixture(t, nil)
		f.images.On("Upload", mock.Anything, "", mock.Anything).
			Return(&models.StoredImage{URL: "https://cdn.example/a.png", PublicID: "biteflow/a"}, nil)

		rec, body := f.do(multipartRequest(t, "/api/upload", nil, []byte("png-bytes")), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://cdn.example/a.png", body["imageUrl"])
		assert.Equal(t, "biteflow/a", body["publicId"])
	})

	t.Run("over the size limit", func(t *testing.T) {
		f := newFixture(t, nil)

		rec, _ := f.do(multipartRequest(t, "/api/upload", nil, bytes.Repeat([]byte("a"), 6<<20)), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_BookingQRCode(t *testing.T) {
	f := newFixture(t, nil)
	userID := uuid.New()
	booking := &models.Booking{ID: uuid.New(), UserID: userID}
	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/booking/"+booking.ID.String()+"/qrcode", nil)
	rec, _ := f.do(req, f.userToken(t, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	// browsers send the requested header names lowercased and sorted
	tests := []struct {
		name        string
		origin      string
		headers     string
		allowOrigin string
		credentials string
	}{
		{
			name:        "credentialed json request",
			origin:      testOrigin,
			headers:     "authorization,content-type",
			allowOrigin: testOrigin,
			credentials: "true",
		},
		{
			name:        "json request without a token header",
			origin:      testOrigin,
			headers:     "content-type",
			allowOrigin: testOrigin,
			credentials: "true",
		},
		{
			name:        "no extra headers",
			origin:      testOrigin,
			allowOrigin: testOrigin,
			credentials: "true",
		},
		{
			name:    "unlisted header",
			origin:  testOrigin,
			headers: "x-api-key",
		},
		{
			name:    "unknown origin",
			origin:  "https://evil.example",
			headers: "content-type",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t, nil)

			req := httptest.NewRequest(http.MethodOptions, "/api/cart/add", nil)
			req.Header.Set("Origin", testCase.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			if testCase.headers != "" {
				req.Header.Set("Access-Control-Request-Headers", testCase.headers)
			}
			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)

			assert.Equal(t, testCase.allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, testCase.credentials, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}
