package handlers

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mariamadly/loomkids-backend-go/database"
	"github.com/mariamadly/loomkids-backend-go/models"
)

// Subscribe captures a newsletter email. Signing up twice is deliberately a
// success, not an error: the unique index collapses the duplicate and the
// caller cannot tell the difference.
func (h *Handler) Subscribe(c echo.Context) error {
	var req struct {
		Email  string `json:"email"`
		Source string `json:"source"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid email address"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	_, err := h.Store.Collection(database.ColSubscribers).InsertOne(ctx, models.Subscriber{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Source:    req.Source,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to subscribe"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Subscribed"})
}
