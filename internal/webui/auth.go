package webui

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/irvandi/gotoko/internal/domain"
	"github.com/irvandi/gotoko/internal/webserver"
	"github.com/irvandi/gotoko/pkg/common"
)

func getDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextKeyDB).(*gorm.DB)
}

func loginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", echo.Map{})
}

func loginSubmit(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	var operator domain.SysOpr
	err := getDB(c).Where("username = ? and status = ?", username, common.ENABLED).First(&operator).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password)) != nil {
		zap.L().Warn("login rejected", zap.String("username", username))
		return c.Render(http.StatusUnauthorized, "login", echo.Map{"Error": "Invalid username or password"})
	}

	sess, _ := session.Get(webserver.SessionName, c)
	sess.Options.HttpOnly = true
	sess.Values[webserver.SessionKeyUsername] = operator.Username
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Error("session save failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	if err := getDB(c).Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
		Update("last_login", time.Now()).Error; err != nil {
		zap.L().Error("failed to update last login", zap.String("username", operator.Username), zap.Error(err))
	}

	return c.Redirect(http.StatusFound, "/")
}

func logout(c echo.Context) error {
	sess, _ := session.Get(webserver.SessionName, c)
	delete(sess.Values, webserver.SessionKeyUsername)
	sess.Options.MaxAge = -1
	_ = sess.Save(c.Request(), c.Response())
	return c.Redirect(http.StatusFound, "/login")
}
