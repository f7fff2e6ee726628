package produkapi

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/irvandi/gotoko/internal/domain"
	"github.com/irvandi/gotoko/internal/webserver"
)

// InitRouter registers the produk CRUD endpoints.
func InitRouter() {
	webserver.ApiGET("/produk", listProduk)
	webserver.ApiGET("/produk/:id", getProduk)
	webserver.ApiPOST("/produk", createProduk)
	webserver.ApiPUT("/produk/:id", updateProduk)
	webserver.ApiDELETE("/produk/:id", deleteProduk)
}

func listProduk(c echo.Context) error {
	rows := make([]domain.Produk, 0)
	if err := GetDB(c).Find(&rows).Error; err != nil {
		return serverError(c, "list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

func getProduk(c echo.Context) error {
	// The raw path value goes straight to the storage layer, a malformed
	// id simply matches no row.
	id := c.Param("id")
	var p domain.Produk
	err := GetDB(c).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.String(http.StatusNotFound, "Product not found")
	} else if err != nil {
		return serverError(c, "get", err)
	}
	return c.JSON(http.StatusOK, p)
}

// validateFields checks the three required text fields in a fixed order and
// reports the first offender. It runs before any storage or upload-store
// interaction.
func validateFields(namaProduk, deskripsi, harga string) string {
	if namaProduk == "" {
		return "Product name cannot be empty"
	}
	if deskripsi == "" {
		return "Description cannot be empty"
	}
	if harga == "" {
		return "Price cannot be empty"
	}
	return ""
}

func createProduk(c echo.Context) error {
	namaProduk := strings.TrimSpace(c.FormValue("nama_produk"))
	deskripsi := strings.TrimSpace(c.FormValue("deskripsi"))
	harga := strings.TrimSpace(c.FormValue("harga"))
	if msg := validateFields(namaProduk, deskripsi, harga); msg != "" {
		return c.String(http.StatusBadRequest, msg)
	}

	// Commit the optional image only after validation passed, so a
	// rejected request leaves nothing behind on disk.
	var imageUrl *string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		ref, err := saveUpload(c, file)
		if err != nil {
			return serverError(c, "save upload", err)
		}
		imageUrl = &ref
	}

	now := time.Now()
	p := domain.Produk{
		NamaProduk: namaProduk,
		Deskripsi:  deskripsi,
		Harga:      harga,
		ImageUrl:   imageUrl,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		// compensating cleanup, the committed file must not outlive a
		// failed insert
		if imageUrl != nil {
			_ = GetUploads(c).Remove(*imageUrl)
		}
		return serverError(c, "create", err)
	}
	return c.JSON(http.StatusCreated, p)
}

func saveUpload(c echo.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return GetUploads(c).Save(src, file.Filename)
}

func updateProduk(c echo.Context) error {
	id := c.Param("id")
	namaProduk := strings.TrimSpace(c.FormValue("nama_produk"))
	deskripsi := strings.TrimSpace(c.FormValue("deskripsi"))
	harga := strings.TrimSpace(c.FormValue("harga"))
	if msg := validateFields(namaProduk, deskripsi, harga); msg != "" {
		return c.String(http.StatusBadRequest, msg)
	}

	// Only the three text fields change, image_url is fixed at creation.
	ret := GetDB(c).Model(&domain.Produk{}).Where("id = ?", id).Updates(map[string]interface{}{
		"nama_produk": namaProduk,
		"deskripsi":   deskripsi,
		"harga":       harga,
		"updated_at":  time.Now(),
	})
	if ret.Error != nil {
		return serverError(c, "update", ret.Error)
	}
	if ret.RowsAffected == 0 {
		return c.String(http.StatusNotFound, "Product not found")
	}

	// Echo the submitted values back instead of re-reading the row.
	return c.JSON(http.StatusOK, echo.Map{
		"id":          id,
		"nama_produk": namaProduk,
		"deskripsi":   deskripsi,
		"harga":       harga,
	})
}

func deleteProduk(c echo.Context) error {
	id := c.Param("id")
	ret := GetDB(c).Where("id = ?", id).Delete(&domain.Produk{})
	if ret.Error != nil {
		return serverError(c, "delete", ret.Error)
	}
	if ret.RowsAffected == 0 {
		return c.String(http.StatusNotFound, "Product not found")
	}
	return c.NoContent(http.StatusNoContent)
}
