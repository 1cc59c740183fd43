// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pgbee/internal/delivery/http/middleware"
	"pgbee/internal/delivery/http/router/handler"
)

const authRateLimitScope = "auth"

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	HostelHandler  *handler.HostelHandler
	ProfileHandler *handler.ProfileHandler
	ReviewHandler  *handler.ReviewHandler
	ListingHandler *handler.ListingHandler
	EnquiryHandler *handler.EnquiryHandler
	FileHandler    *handler.FileHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimit is nil when rate limiting is disabled.
	RateLimit *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	auth      *handler.AuthHandler
	hostel    *handler.HostelHandler
	profile   *handler.ProfileHandler
	review    *handler.ReviewHandler
	listing   *handler.ListingHandler
	enquiry   *handler.EnquiryHandler
	file      *handler.FileHandler
	authMW    *middleware.AuthMiddleware
	rateLimit *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		auth:      params.AuthHandler,
		hostel:    params.HostelHandler,
		profile:   params.ProfileHandler,
		review:    params.ReviewHandler,
		listing:   params.ListingHandler,
		enquiry:   params.EnquiryHandler,
		file:      params.FileHandler,
		authMW:    params.AuthMiddleware,
		rateLimit: params.RateLimit,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	if r.rateLimit != nil {
		authGroup.Use(r.rateLimit.Limit(authRateLimitScope))
	}
	{
		authGroup.POST("/signup", r.auth.Signup)
		authGroup.POST("/login", r.auth.Login)
		authGroup.POST("/token/refresh", r.auth.RefreshToken)
		authGroup.POST("/logout", r.auth.Logout)
		authGroup.GET("/google", r.auth.GoogleLogin)
		authGroup.GET("/google/callback", r.auth.GoogleCallback)
		authGroup.GET("/me", r.auth.Me, r.authMW.Authenticate)
	}

	hostelGroup := e.Group("/hostel", r.authMW.Authenticate)
	{
		hostelGroup.GET("", r.hostel.List)
		hostelGroup.POST("", r.hostel.Create)
		hostelGroup.GET("/user", r.hostel.ListMine)
		hostelGroup.GET("/nearby", r.hostel.Nearby)
		hostelGroup.GET("/:id", r.hostel.Get)
		hostelGroup.GET("/:id/qrcode", r.hostel.QRCode)
		hostelGroup.PUT("/:id", r.hostel.Update)
		hostelGroup.DELETE("/:id", r.hostel.Delete)
	}

	ownerGroup := e.Group("/owner", r.authMW.Authenticate)
	{
		ownerGroup.POST("", r.profile.CreateOwner)
		ownerGroup.GET("", r.profile.ListOwners)
		ownerGroup.GET("/:id", r.profile.GetOwner)
		ownerGroup.PUT("/:id", r.profile.UpdateOwner)
		ownerGroup.DELETE("/:id", r.profile.DeleteOwner)
	}

	studentGroup := e.Group("/student", r.authMW.Authenticate)
	{
		studentGroup.POST("", r.profile.CreateStudent)
		studentGroup.GET("", r.profile.GetMyStudent)
		studentGroup.GET("/:id", r.profile.GetStudent)
		studentGroup.PUT("/:id", r.profile.UpdateStudent)
		studentGroup.DELETE("/:id", r.profile.DeleteStudent)
	}

	reviewGroup := e.Group("/review", r.authMW.Authenticate)
	{
		reviewGroup.POST("", r.review.Create)
		reviewGroup.GET("/user", r.review.ListMine)
		reviewGroup.GET("/hostel/:id", r.review.ListByHostel)
		reviewGroup.GET("/:id", r.review.Get)
		reviewGroup.PUT("/:id", r.review.Update)
		reviewGroup.DELETE("/:id", r.review.Delete)
	}

	amenitiesGroup := e.Group("/amenities", r.authMW.Authenticate)
	{
		amenitiesGroup.POST("", r.listing.CreateAmenities)
		amenitiesGroup.GET("/:hostelId", r.listing.GetAmenities)
		amenitiesGroup.PUT("/:hostelId", r.listing.UpdateAmenities)
		amenitiesGroup.DELETE("/:hostelId", r.listing.DeleteAmenities)
	}

	rentGroup := e.Group("/rent", r.authMW.Authenticate)
	{
		rentGroup.POST("", r.listing.CreateRent)
		rentGroup.GET("/:hostelId", r.listing.ListRent)
		rentGroup.PUT("/:hostelId", r.listing.UpdateRent)
		rentGroup.DELETE("/:hostelId", r.listing.DeleteRent)
	}

	enquiryGroup := e.Group("/enquiry", r.authMW.Authenticate)
	{
		enquiryGroup.POST("", r.enquiry.Create)
		enquiryGroup.GET("", r.enquiry.ListMine)
		enquiryGroup.GET("/hostel/:id", r.enquiry.ListByHostel)
		enquiryGroup.GET("/student/:id", r.enquiry.ListByStudent)
		enquiryGroup.PUT("/:id", r.enquiry.Update)
		enquiryGroup.DELETE("/:id", r.enquiry.Delete)
	}

	fileGroup := e.Group("/file", r.authMW.Authenticate)
	{
		fileGroup.POST("/upload", r.file.Upload)
		fileGroup.GET("", r.file.ListMine)
		fileGroup.GET("/:key", r.file.Get)
	}
}
