package produkapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irvandi/gotoko/internal/uploads"
	"github.com/irvandi/gotoko/internal/webserver"
)

// GetDB returns the request-scoped storage gateway handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextKeyDB).(*gorm.DB)
}

// GetUploads returns the request-scoped upload store.
func GetUploads(c echo.Context) *uploads.Store {
	return c.Get(webserver.ContextKeyUploads).(*uploads.Store)
}

// serverError logs the cause and answers with an opaque 500, storage
// details never reach the client.
func serverError(c echo.Context, op string, err error) error {
	zap.L().Error("produk api error", zap.String("op", op), zap.Error(err))
	return c.String(http.StatusInternalServerError, "Internal Server Error")
}
