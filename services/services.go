package services

import (
	"github.com/hashicorp/go-hclog"

	"github.com/coursecatalog/catalog/repositories"
)

// Services holds all service instances
type Services struct {
	Sessions SessionService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, opts SessionOptions, logger hclog.Logger) *Services {
	return &Services{
		Sessions: NewSessionService(repos, opts, logger),
	}
}
