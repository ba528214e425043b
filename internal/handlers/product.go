package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce/internal/models"
	"ecommerce/internal/validation"
)

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		products := make([]models.Product, 0)
		if err := db.WithContext(c.Request.Context()).Find(&products).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		var product models.Product
		err := db.WithContext(c.Request.Context()).First(&product, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// GET /products/search?name=
// Case-insensitive substring match on the product name. No matches is a
// plain 200 with an empty array.
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/search"
		defer handlePanic(c, route)

		name := strings.TrimSpace(c.Query("name"))
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name query parameter is required")
			return
		}

		products := make([]models.Product, 0)
		err := db.WithContext(c.Request.Context()).
			Where("lower(name) LIKE ?", "%"+strings.ToLower(name)+"%").
			Find(&products).Error
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] name=%q matched %d products", route, name, len(products))
		c.JSON(http.StatusOK, products)
	}
}

// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		var req validation.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if fields := validation.Validate(req); fields != nil {
			respondFieldErrors(c, route, fields)
			return
		}

		product := models.Product{
			Name:  strings.TrimSpace(req.Name),
			Price: *req.Price,
		}
		if err := db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] created product id=%d", route, product.ID)
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /products/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		var req validation.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if fields := validation.Validate(req); fields != nil {
			respondFieldErrors(c, route, fields)
			return
		}

		ctx := c.Request.Context()
		var product models.Product
		err := db.WithContext(ctx).First(&product, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		product.Name = strings.TrimSpace(req.Name)
		product.Price = *req.Price

		if err := db.WithContext(ctx).Save(&product).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// DELETE /products/:id
// Any association rows pointing at the product are removed in the same
// transaction as the product row.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /products/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var product models.Product
			if err := tx.First(&product, id).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM order_products WHERE product_id = ?", id).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})

		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] deleted product id=%d", route, id)
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
