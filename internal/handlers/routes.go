package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires every endpoint onto the router with a shared store
// handle. main.go and the handler tests both go through here so the route
// table only exists once.
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the E-Commerce Database")
	})

	r.GET("/customers", GetCustomers(db))
	r.GET("/customers/search", SearchCustomers(db))
	r.GET("/customers/:id", GetCustomer(db))
	r.GET("/customers/:id/orders", GetCustomerOrders(db))
	r.POST("/add-customer", CreateCustomer(db))
	r.PUT("/edit-customer/:id", UpdateCustomer(db))
	r.DELETE("/customers/:id", DeleteCustomer(db))

	r.GET("/products", GetProducts(db))
	r.GET("/products/search", SearchProducts(db))
	r.GET("/products/:id", GetProduct(db))
	r.POST("/products", CreateProduct(db))
	r.PUT("/products/:id", UpdateProduct(db))
	r.DELETE("/products/:id", DeleteProduct(db))

	r.GET("/orders", GetOrders(db))
	r.GET("/orders/:id", GetOrder(db))
	r.POST("/place-order", PlaceOrder(db))
	r.PUT("/orders/:id", UpdateOrder(db))
	r.DELETE("/orders/:id", DeleteOrder(db))

	r.POST("/customeraccounts", CreateAccount(db))
	r.GET("/customeraccounts/:id", GetAccount(db))
	r.PUT("/customeraccounts/:id", UpdateAccount(db))
	r.DELETE("/customeraccounts/:id", DeleteAccount(db))
}
