package webui

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/irvandi/gotoko/internal/domain"
	"github.com/irvandi/gotoko/internal/webserver"
)

// InitRouter registers the session-gated console pages plus the login flow.
func InitRouter() {
	webserver.PubGET("/login", loginPage)
	webserver.PubPOST("/login", loginSubmit)
	webserver.PubGET("/logout", logout)

	webserver.PageGET("/", indexPage)
	webserver.PageGET("/contact", contactPage)
	webserver.PageGET("/produk-view", produkPage)
}

func sessionUsername(c echo.Context) string {
	sess, err := session.Get(webserver.SessionName, c)
	if err != nil {
		return ""
	}
	if name, ok := sess.Values[webserver.SessionKeyUsername].(string); ok {
		return name
	}
	return ""
}

func indexPage(c echo.Context) error {
	return c.Render(http.StatusOK, "index", echo.Map{
		"Title":    "Home",
		"Username": sessionUsername(c),
	})
}

func contactPage(c echo.Context) error {
	return c.Render(http.StatusOK, "contact", echo.Map{
		"Title": "Contact",
	})
}

func produkPage(c echo.Context) error {
	var rows []domain.Produk
	if err := getDB(c).Find(&rows).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}
	return c.Render(http.StatusOK, "produk", echo.Map{
		"Title":  "Produk",
		"Produk": rows,
	})
}
