// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"contactbook/internal/delivery/api/middleware"
	"contactbook/internal/delivery/api/router/handler"
	"contactbook/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ContactHandler *handler.ContactHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	contactHandler *handler.ContactHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		contactHandler: params.ContactHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", handler.HealthCheck)
	api.GET("/healthchecker", r.healthHandler.Healthchecker)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/confirmed_email/:token", r.authHandler.ConfirmedEmail)
		authGroup.POST("/request_email", r.authHandler.RequestEmail)
		authGroup.POST("/reset_password", r.authHandler.ResetPassword)
		authGroup.GET("/confirm_reset_password/:token", r.authHandler.ConfirmResetPassword)
	}

	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.Me)
		userGroup.PATCH("/avatar", r.userHandler.UpdateAvatar, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}

	contactGroup := api.Group("/contacts")
	contactGroup.Use(r.authMiddleware.Authenticate)
	{
		contactGroup.GET("", r.contactHandler.List)
		// Registered before /:id so "birthdays" is never parsed as an ID.
		contactGroup.GET("/birthdays", r.contactHandler.Birthdays)
		contactGroup.POST("", r.contactHandler.Create)
		contactGroup.GET("/:id", r.contactHandler.Get)
		contactGroup.PUT("/:id", r.contactHandler.Update)
		contactGroup.DELETE("/:id", r.contactHandler.Delete)
	}
}
