package handlers

import (
	"github.com/gin-gonic/gin"

	"campusforms/internal/auth"
	"campusforms/internal/middleware"
)

// Deps are the collaborators shared by every route.
type Deps struct {
	Contacts ContactStore
	Students StudentStore
	Users    UserStore
	Admins   AdminStore
	Products ProductStore
	DB       Pinger

	// Tokens is nil when no JWT secret is configured.
	Tokens            *auth.Tokens
	RequireAdminToken bool
	MaxImageBytes     int64
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthz", Health(d.DB))

	r.POST("/submit-form", SubmitForm(d.Contacts))
	r.GET("/get-data", ListFormData(d.Contacts))
	r.GET("/get-data/:id", GetFormData(d.Contacts))
	r.PUT("/update-form-data/:id", UpdateFormData(d.Contacts))
	r.DELETE("/delete-form-data/:id", DeleteFormData(d.Contacts))

	r.POST("/signup_stu", SignupStudent(d.Students))

	r.POST("/login", Login(d.Users, d.Tokens))
	r.PUT("/forgot-password", ForgotPassword(d.Users))
	if d.Tokens != nil {
		r.GET("/me", middleware.UserAuth(d.Tokens), GetMe(d.Users))
	}

	r.POST("/signup_admin", SignupAdmin(d.Admins))
	r.POST("/login_admin", AdminLogin(d.Admins, d.Tokens))

	products := r.Group("/api/products")
	products.GET("", GetProducts(d.Products))

	writes := products.Group("")
	if d.RequireAdminToken && d.Tokens != nil {
		writes.Use(middleware.AdminAuth(d.Tokens))
	}
	{
		writes.POST("", CreateProduct(d.Products, d.MaxImageBytes))
		writes.PUT("/:id", UpdateProduct(d.Products, d.MaxImageBytes))
		writes.DELETE("/:id", DeleteProduct(d.Products))
	}
}
