package webui

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/irvandi/gotoko/internal/domain"
	"github.com/irvandi/gotoko/internal/webserver"
	"github.com/irvandi/gotoko/pkg/common"
)

var testDbSeq int64

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:webui%d?mode=memory&cache=shared", atomic.AddInt64(&testDbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	e := echo.New()
	e.Renderer = webserver.NewTemplateRenderer()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(webserver.ContextKeyDB, db)
			return next(c)
		}
	})
	e.GET("/login", loginPage)
	e.POST("/login", loginSubmit)
	e.GET("/logout", logout)
	e.GET("/", indexPage, webserver.RequireSession)
	e.GET("/produk-view", produkPage, webserver.RequireSession)

	return e, db
}

func seedOperator(t *testing.T, db *gorm.DB, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Create(&domain.SysOpr{
		ID:       common.UUIDint64(),
		Username: username,
		Password: string(hash),
		Level:    "super",
		Status:   common.ENABLED,
	}).Error; err != nil {
		t.Fatalf("seed operator: %v", err)
	}
}

func login(t *testing.T, e *echo.Echo, username, password string) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 after login, got %d", rec.Code)
	}
	return rec.Result().Cookies()
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestLoginFlow(t *testing.T) {
	e, db := newTestServer(t)
	seedOperator(t, db, "admin", "rahasia")

	cookies := login(t, e, "admin", "rahasia")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "admin") {
		t.Error("expected username in rendered page")
	}
}

func TestLoginRecordsLastLogin(t *testing.T) {
	e, db := newTestServer(t)
	seedOperator(t, db, "admin", "rahasia")

	before := time.Now().Add(-time.Second)
	login(t, e, "admin", "rahasia")

	var operator domain.SysOpr
	if err := db.Where("username = ?", "admin").First(&operator).Error; err != nil {
		t.Fatalf("query operator: %v", err)
	}
	if operator.LastLogin.Before(before) {
		t.Errorf("last_login not updated: %v", operator.LastLogin)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e, db := newTestServer(t)
	seedOperator(t, db, "admin", "rahasia")

	form := url.Values{"username": {"admin"}, "password": {"salah"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password") {
		t.Errorf("expected error message, got %q", rec.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	e, db := newTestServer(t)
	seedOperator(t, db, "admin", "rahasia")

	cookies := login(t, e, "admin", "rahasia")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}

	// the refreshed cookie no longer grants access
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", rec.Code)
	}
}

func TestProdukPageRendersRows(t *testing.T) {
	e, db := newTestServer(t)
	seedOperator(t, db, "admin", "rahasia")
	db.Create(&domain.Produk{NamaProduk: "Kursi", Deskripsi: "Kursi kayu", Harga: "150000"})

	cookies := login(t, e, "admin", "rahasia")
	req := httptest.NewRequest(http.MethodGet, "/produk-view", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Kursi") {
		t.Error("expected product name in rendered page")
	}
}
