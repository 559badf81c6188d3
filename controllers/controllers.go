package controllers

import (
	"github.com/coursecatalog/catalog/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Dashboard *DashboardController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, auth AuthConfig) *Controllers {
	auth.Sessions = services.Sessions
	return &Controllers{
		Auth:      NewAuthController(auth),
		Dashboard: NewDashboardController(),
	}
}
