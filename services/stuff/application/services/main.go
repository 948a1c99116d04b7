package services

import (
	"github.com/ghuser/stuffkeeper/pkg/app"
	"github.com/ghuser/stuffkeeper/services/stuff/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Stuff *StuffService
}

// New wires all stuff application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewStuffRepository(a.Db)
	return &Services{
		Stuff: NewStuffService(repo),
	}
}
