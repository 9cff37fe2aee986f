package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mariamadly/loomkids-backend-go/database"
	"github.com/mariamadly/loomkids-backend-go/models"
)

func (h *Handler) GetProduct(c echo.Context) error {
	productID := c.Param("id")

	var product models.Product
	err := h.Store.Collection(database.ColProducts).FindOne(c.Request().Context(), bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	return c.JSON(http.StatusOK, product)
}

func (h *Handler) GetProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.Store.Collection(database.ColProducts).Find(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to decode products"})
	}

	return c.JSON(http.StatusOK, products)
}

func (h *Handler) CreateProduct(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if product.ID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Product id is required"})
	}
	for key, qty := range product.StockBySize {
		if qty < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Negative stock for key " + key})
		}
	}

	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Store.Collection(database.ColProducts).InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Product already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create product"})
	}

	return c.JSON(http.StatusCreated, product)
}
