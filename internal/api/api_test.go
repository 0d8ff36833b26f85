package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"confidencevoice/internal/analysis"
	"confidencevoice/internal/events"
	"confidencevoice/internal/repository"
	"confidencevoice/internal/retry"
	"confidencevoice/internal/service"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type nopPublisher struct{}

func (nopPublisher) PublishOrderEvent(context.Context, events.OrderEvent) error { return nil }

type server struct {
	e    *echo.Echo
	mock sqlmock.Sqlmock
	mr   *miniredis.Miniredis
}

func newServer(t *testing.T) *server {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	validator := service.NewValidator()
	store := repository.NewStore(db)
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	contactRepo := repository.NewContactRepository(db)

	bookService := service.NewBookService(bookRepo, rdb, time.Minute, validator)
	cartService := service.NewCartService(cartRepo, bookRepo)
	client := analysis.NewClient(map[string]string{}, retry.Fixed(1, 0), time.Second)

	h := Handlers{
		Auth:       NewAuthHandler(service.NewUserService(userRepo, rdb, testSecret, time.Hour, validator)),
		Books:      NewBookHandler(bookService, t.TempDir()),
		Categories: NewCategoryHandler(service.NewCategoryService(categoryRepo, bookService, validator)),
		Cart:       NewCartHandler(cartService),
		Checkout: NewCheckoutHandler(service.NewCheckoutService(store,
			service.NewRedisIdempotencyStore(rdb, time.Hour), nopPublisher{}, validator)),
		Orders:   NewOrderHandler(service.NewOrderService(store, orderRepo, nopPublisher{}, validator)),
		Payments: NewPaymentHandler(service.NewPaymentService(paymentRepo, validator)),
		Contact:  NewContactHandler(service.NewContactService(contactRepo, validator)),
		Analysis: NewAnalysisHandler(service.NewAnalysisService(repository.NewAnalysisRepository(db), client)),
		Admin:    NewAdminHandler(service.NewAdminService(userRepo, bookRepo, categoryRepo, orderRepo, contactRepo)),
	}

	e := echo.New()
	RegisterRoutes(e, h, JWT(testSecret))
	return &server{e: e, mock: mock, mr: mr}
}

// token signs a token for userID and stores it as the user's live session.
func (s *server) token(t *testing.T, userID int, role string) string {
	t.Helper()
	claims := &service.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	require.NoError(t, s.mr.Set(fmt.Sprintf("session:%d", userID), signed))
	return signed
}

func (s *server) do(t *testing.T, method, path, bearer, body string, headers ...string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	code, body := s.do(t, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])
}

func TestCartNeedsToken(t *testing.T) {
	s := newServer(t)
	code, body := s.do(t, http.MethodGet, "/api/cart/4", "", "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, false, body["success"])
}

func TestCartOfAnotherUserIsForbidden(t *testing.T) {
	s := newServer(t)
	code, _ := s.do(t, http.MethodGet, "/api/cart/5", s.token(t, 4, "user"), "")
	require.Equal(t, http.StatusForbidden, code)
}

func TestInvalidPathParam(t *testing.T) {
	s := newServer(t)
	code, body := s.do(t, http.MethodDelete, "/api/cart/clear/abc", s.token(t, 4, "user"), "")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Invalid userId", body["message"])
}

func TestClearCart(t *testing.T) {
	s := newServer(t)
	s.mock.ExpectExec("DELETE FROM cart WHERE user_id").WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 0))

	code, body := s.do(t, http.MethodDelete, "/api/cart/clear/4", s.token(t, 4, "user"), "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestCheckoutReportsFieldErrors(t *testing.T) {
	s := newServer(t)
	payload := `{"shipping":{"name":"Jane Doe","address":"12 Lake Road","pincode":"560001"},"payment":{"method":"upi","upi_id":"alice"}}`

	code, body := s.do(t, http.MethodPost, "/api/checkout", s.token(t, 4, "user"), payload)
	require.Equal(t, http.StatusBadRequest, code)
	fields, _ := body["errors"].(map[string]interface{})
	require.Contains(t, fields, "upi_id")
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestCheckoutDuplicateKeyIsConflict(t *testing.T) {
	s := newServer(t)
	require.NoError(t, s.mr.Set("idempotent-key:4:abc", "ORDER-20261016093015-ABCDEF"))
	payload := `{"shipping":{"name":"Jane Doe","address":"12 Lake Road","pincode":"560001"},"payment":{"method":"cod"}}`

	code, body := s.do(t, http.MethodPost, "/api/checkout", s.token(t, 4, "user"), payload, idempotencyHeader, "abc")
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "ORDER-20261016093015-ABCDEF", body["order_id"])
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newServer(t)

	code, _ := s.do(t, http.MethodPut, "/api/orders/ORDER-1", s.token(t, 4, "user"), `{"status":"Approved"}`)
	require.Equal(t, http.StatusForbidden, code)

	admin := s.token(t, 1, "admin")
	code, _ = s.do(t, http.MethodPut, "/api/orders/ORDER-1", admin, `{"status":"Lost"}`)
	require.Equal(t, http.StatusBadRequest, code)

	s.mock.ExpectExec("UPDATE orders SET status").WithArgs("Approved", "ORDER-1").WillReturnResult(sqlmock.NewResult(0, 1))
	code, body := s.do(t, http.MethodPut, "/api/orders/ORDER-1", admin, `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	s.mock.ExpectExec("UPDATE orders SET status").WithArgs("Approved", "ORDER-404").WillReturnResult(sqlmock.NewResult(0, 0))
	code, _ = s.do(t, http.MethodPut, "/api/orders/ORDER-404", admin, `{"status":"Approved"}`)
	require.Equal(t, http.StatusNotFound, code)

	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestDatabaseFailureIsGeneric500(t *testing.T) {
	s := newServer(t)
	s.mock.ExpectQuery("FROM categories").WillReturnError(errors.New("connection refused"))

	code, body := s.do(t, http.MethodGet, "/api/categories", "", "")
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "Database error", body["message"])
}

func TestPaymentAddNamesMissingField(t *testing.T) {
	s := newServer(t)
	payload := `{"user_id":4,"price":300,"payment_method":"cod","phone_number":"9876543210","billing_address":"12 Lake Road","pincode":"560001"}`

	code, body := s.do(t, http.MethodPost, "/api/payments/add", s.token(t, 4, "user"), payload)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "full_name is required", body["message"])
}

func TestUnknownAnalysisServiceIsNotFound(t *testing.T) {
	s := newServer(t)
	code, _ := s.do(t, http.MethodGet, "/api/analysis/video/reports", s.token(t, 4, "user"), "")
	require.Equal(t, http.StatusNotFound, code)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	s := newServer(t)
	bearer := s.token(t, 4, "user")
	s.mr.Del("session:4")

	code, body := s.do(t, http.MethodDelete, "/api/cart/clear/4", bearer, "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, false, body["success"])
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestReplacedTokenIsRejected(t *testing.T) {
	s := newServer(t)
	stale := s.token(t, 1, "admin")
	require.NoError(t, s.mr.Set("session:1", "a-newer-token"))

	code, _ := s.do(t, http.MethodGet, "/api/admin/summary", stale, "")
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestDemotedAdminLosesAccess(t *testing.T) {
	s := newServer(t)
	admin := s.token(t, 1, "admin")
	demoted := s.token(t, 2, "admin")

	s.mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 1))
	code, _ := s.do(t, http.MethodPut, "/api/auth/users/2", admin, `{"name":"Ravi","email":"ravi@example.com","role":"user"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/admin/summary", demoted, "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.NoError(t, s.mock.ExpectationsWereMet())
}
