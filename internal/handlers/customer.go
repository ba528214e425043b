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

// GET /customers
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /customers"
		defer handlePanic(c, route)

		customers := make([]models.Customer, 0)
		if err := db.WithContext(c.Request.Context()).Find(&customers).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d customers", route, len(customers))
		c.JSON(http.StatusOK, customers)
	}
}

// GET /customers/:id
func GetCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /customers/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		var customer models.Customer
		err := db.WithContext(c.Request.Context()).First(&customer, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, customer)
	}
}

// GET /customers/search?email=
// Case-insensitive substring match; an empty result is a plain 200 with an
// empty array rather than an error body.
func SearchCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /customers/search"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Query("email"))
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "email query parameter is required")
			return
		}

		customers := make([]models.Customer, 0)
		err := db.WithContext(c.Request.Context()).
			Where("lower(email) LIKE ?", "%"+strings.ToLower(email)+"%").
			Find(&customers).Error
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] email=%q matched %d customers", route, email, len(customers))
		c.JSON(http.StatusOK, customers)
	}
}

// GET /customers/:id/orders
// Returns the customer's orders with their products preloaded, not bare
// order rows.
func GetCustomerOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /customers/:id/orders"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		var customer models.Customer
		err := db.WithContext(ctx).First(&customer, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		orders := make([]models.Order, 0)
		err = db.WithContext(ctx).
			Preload("Products").
			Where("customer_id = ?", id).
			Find(&orders).Error
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// POST /add-customer
func CreateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /add-customer"
		defer handlePanic(c, route)

		var req validation.CustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if fields := validation.Validate(req); fields != nil {
			respondFieldErrors(c, route, fields)
			return
		}

		customer := models.Customer{
			Name:  strings.TrimSpace(req.Name),
			Email: strings.TrimSpace(req.Email),
			Phone: strings.TrimSpace(req.Phone),
		}
		if err := db.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
			if isUniqueViolation(err) {
				respondWithError(c, http.StatusConflict, route, "email already in use")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] created customer id=%d", route, customer.ID)
		c.JSON(http.StatusCreated, customer)
	}
}

// PUT /edit-customer/:id
// Full replace of the mutable fields.
func UpdateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /edit-customer/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		var req validation.CustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if fields := validation.Validate(req); fields != nil {
			respondFieldErrors(c, route, fields)
			return
		}

		ctx := c.Request.Context()
		var customer models.Customer
		err := db.WithContext(ctx).First(&customer, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		customer.Name = strings.TrimSpace(req.Name)
		customer.Email = strings.TrimSpace(req.Email)
		customer.Phone = strings.TrimSpace(req.Phone)

		if err := db.WithContext(ctx).Save(&customer).Error; err != nil {
			if isUniqueViolation(err) {
				respondWithError(c, http.StatusConflict, route, "email already in use")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, customer)
	}
}

// DELETE /customers/:id
// Cascade is explicit: the customer's orders, their association rows and the
// customer's account all go in one transaction.
func DeleteCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /customers/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var customer models.Customer
			if err := tx.First(&customer, id).Error; err != nil {
				return err
			}

			var orderIDs []uint
			if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
				return err
			}
			if len(orderIDs) > 0 {
				if err := tx.Exec("DELETE FROM order_products WHERE order_id IN ?", orderIDs).Error; err != nil {
					return err
				}
				if err := tx.Where("customer_id = ?", id).Delete(&models.Order{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerAccount{}).Error; err != nil {
				return err
			}
			return tx.Delete(&customer).Error
		})

		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] deleted customer id=%d", route, id)
		c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
	}
}
