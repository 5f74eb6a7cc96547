package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"clinicbook/apperrors"
	"clinicbook/models"
	userService "clinicbook/services/user"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body and reports malformed input as a validation error.
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return apperrors.Validation("Missing Details")
	}
	return nil
}

// parseAddress accepts the address form field either as a JSON object or as plain text.
func parseAddress(raw string) models.Address {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Address{}
	}
	var addr models.Address
	if err := json.Unmarshal([]byte(raw), &addr); err == nil {
		return addr
	}
	return models.Address{Line1: raw}
}

// formImage returns the optional "image" file of a multipart form. The returned
// closer must be called once the upload finished.
func formImage(c *gin.Context) (*userService.ImageInput, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperrors.Validation("Invalid image upload")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, apperrors.Validation("Invalid image upload")
	}
	return &userService.ImageInput{File: f, Filename: fh.Filename}, func() { _ = f.Close() }, nil
}

type appointmentRequest struct {
	AppointmentID string `json:"appointmentId"`
}
