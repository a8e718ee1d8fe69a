package handlers

import (
	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// uploadImageField stores an optional multipart image field in object
// storage and returns the resulting URL. A missing field yields "".
func uploadImageField(c echo.Context, uploader storage.Uploader, field string, userID uint) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Field absent or the request has no multipart body.
		return "", nil
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return "", apperrors.NewValidation("Invalid file type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := storage.ObjectName(userID, fileHeader.Filename)
	return uploader.Upload(c.Request().Context(), objectName, src, fileHeader.Size, contentType)
}
