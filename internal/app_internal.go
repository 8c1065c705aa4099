package internal

import "github.com/rios0rios0/gitbridge/internal/domain/entities"

// AppInternal holds everything the cobra root needs once the container is built.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal wraps the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the subcommand controllers in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
