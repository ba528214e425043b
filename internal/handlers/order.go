package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce/internal/models"
	"ecommerce/internal/validation"
)

// resolveProducts looks up the products matching ids, silently dropping ids
// that match nothing. Callers reject the request when the result is empty.
func resolveProducts(tx *gorm.DB, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GET /orders
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		orders := make([]models.Order, 0)
		err := db.WithContext(c.Request.Context()).Preload("Products").Find(&orders).Error
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d orders", route, len(orders))
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		var order models.Order
		err := db.WithContext(c.Request.Context()).Preload("Products").First(&order, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// POST /place-order
// Resolves the requested product ids, dropping the ones that match nothing,
// and creates the order row plus its association rows in one transaction.
func PlaceOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /place-order"
		defer handlePanic(c, route)

		var req validation.OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if fields := validation.Validate(req); fields != nil {
			respondFieldErrors(c, route, fields)
			return
		}

		date, err := models.ParseDate(req.Date)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var order models.Order
		txErr := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var customer models.Customer
			if err := tx.First(&customer, req.CustomerID).Error; err != nil {
				return err
			}

			products, err := resolveProducts(tx, req.ProductIDs)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				return errNoMatchingProducts
			}

			order = models.Order{
				Date:       date,
				CustomerID: customer.ID,
				Products:   products,
			}
			return tx.Create(&order).Error
		})

		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		case errors.Is(txErr, errNoMatchingProducts):
			respondWithError(c, http.StatusBadRequest, route, "no matching products")
			return
		case txErr != nil:
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] created order id=%d with %d products", route, order.ID, len(order.Products))
		c.JSON(http.StatusCreated, order)
	}
}

var errNoMatchingProducts = errors.New("no matching products")

// PUT /orders/:id
// Full replace: date, customer reference and the complete product link set.
// Old association rows are removed and the new set inserted atomically with
// the row update.
func UpdateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		var req validation.OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if fields := validation.Validate(req); fields != nil {
			respondFieldErrors(c, route, fields)
			return
		}

		date, err := models.ParseDate(req.Date)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var order models.Order
		txErr := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&order, id).Error; err != nil {
				return err
			}

			var customer models.Customer
			if err := tx.First(&customer, req.CustomerID).Error; err != nil {
				return errCustomerMissing
			}

			products, err := resolveProducts(tx, req.ProductIDs)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				return errNoMatchingProducts
			}

			order.Date = date
			order.CustomerID = customer.ID
			if err := tx.Save(&order).Error; err != nil {
				return err
			}
			if err := tx.Model(&order).Association("Products").Replace(&products); err != nil {
				return err
			}
			order.Products = products
			return nil
		})

		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		case errors.Is(txErr, errCustomerMissing):
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		case errors.Is(txErr, errNoMatchingProducts):
			respondWithError(c, http.StatusBadRequest, route, "no matching products")
			return
		case txErr != nil:
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

var errCustomerMissing = errors.New("customer not found")

// DELETE /orders/:id
// The order's association rows are cleared in the same transaction.
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, id).Error; err != nil {
				return err
			}
			if err := tx.Model(&order).Association("Products").Clear(); err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})

		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] deleted order id=%d", route, id)
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
