package internal

import (
	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/infrastructure/controllers"
)

// AppInternal holds everything the command line needs once the container is built.
type AppInternal struct {
	controllers      []entities.Controller
	updateController *controllers.UpdateController
}

// NewAppInternal creates a new AppInternal.
func NewAppInternal(
	allControllers *[]entities.Controller,
	updateController *controllers.UpdateController,
) *AppInternal {
	return &AppInternal{controllers: *allControllers, updateController: updateController}
}

// GetControllers returns every controller mounted as a subcommand.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// GetUpdateController returns the controller the bare root command runs.
func (it *AppInternal) GetUpdateController() *controllers.UpdateController {
	return it.updateController
}
