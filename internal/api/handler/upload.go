package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/social-network/internal/core/ports"
)

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formUpload opens the optional file field name. It returns a nil upload when
// the field is absent. The returned closer is never nil.
func formUpload(c echo.Context, name string) (*ports.MediaUpload, io.Closer, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, io.NopCloser(nil), nil
		}
		return nil, io.NopCloser(nil), echo.NewHTTPError(http.StatusBadRequest, "invalid file upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, io.NopCloser(nil), fmt.Errorf("open upload: %w", err)
	}
	return &ports.MediaUpload{Reader: f, Size: fh.Size}, f, nil
}
