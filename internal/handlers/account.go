package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ecommerce/internal/models"
	"ecommerce/internal/validation"
)

// POST /customeraccounts
// A duplicate username (or a second account for the same customer) is a 409
// conflict, not a generic failure; nothing is written when the insert is
// rejected.
func CreateAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /customeraccounts"
		defer handlePanic(c, route)

		var req validation.AccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if fields := validation.Validate(req); fields != nil {
			respondFieldErrors(c, route, fields)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not hash password")
			return
		}

		ctx := c.Request.Context()
		var customer models.Customer
		err = db.WithContext(ctx).First(&customer, req.CustomerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		account := models.CustomerAccount{
			Username:     strings.TrimSpace(req.Username),
			PasswordHash: string(hash),
			CustomerID:   customer.ID,
		}
		if err := db.WithContext(ctx).Create(&account).Error; err != nil {
			if isUniqueViolation(err) {
				respondWithError(c, http.StatusConflict, route, "username or customer already has an account")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] created account id=%d for customer id=%d", route, account.ID, customer.ID)
		c.JSON(http.StatusCreated, account)
	}
}

// GET /customeraccounts/:id
// Returns the account with a denormalized snapshot of its linked customer.
func GetAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /customeraccounts/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		var account models.CustomerAccount
		err := db.WithContext(ctx).First(&account, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "account not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var customer models.Customer
		if err := db.WithContext(ctx).First(&customer, account.CustomerID).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":          account.ID,
			"username":    account.Username,
			"customer_id": account.CustomerID,
			"customer": gin.H{
				"id":    customer.ID,
				"name":  customer.Name,
				"email": customer.Email,
				"phone": customer.Phone,
			},
		})
	}
}

// PUT /customeraccounts/:id
// Full replace: username, password (rehashed) and customer reference.
func UpdateAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /customeraccounts/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		var req validation.AccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if fields := validation.Validate(req); fields != nil {
			respondFieldErrors(c, route, fields)
			return
		}

		ctx := c.Request.Context()
		var account models.CustomerAccount
		err := db.WithContext(ctx).First(&account, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(c, http.StatusNotFound, route, "account not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not hash password")
			return
		}

		account.Username = strings.TrimSpace(req.Username)
		account.PasswordHash = string(hash)
		account.CustomerID = req.CustomerID

		if err := db.WithContext(ctx).Save(&account).Error; err != nil {
			if isUniqueViolation(err) {
				respondWithError(c, http.StatusConflict, route, "username or customer already has an account")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, account)
	}
}

// DELETE /customeraccounts/:id
func DeleteAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /customeraccounts/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c, route)
		if !ok {
			return
		}

		result := db.WithContext(c.Request.Context()).Delete(&models.CustomerAccount{}, id)
		if result.Error != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.RowsAffected == 0 {
			respondWithError(c, http.StatusNotFound, route, "account not found")
			return
		}

		log.Printf("[%s] deleted account id=%d", route, id)
		c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
	}
}
