package handler

import (
	"github.com/deppfellow/go-banking/internal/server"
	"github.com/deppfellow/go-banking/internal/service"
)

type Handlers struct {
	Health           *HealthHandler
	OpenAPI          *OpenAPIHandler
	AccountOpening   *AccountOpeningHandler
	AccountOperation *AccountOperationHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:           NewHealthHandler(s),
		OpenAPI:          NewOpenAPIHandler(s),
		AccountOpening:   NewAccountOpeningHandler(s, services.AccountOpening),
		AccountOperation: NewAccountOperationHandler(s, services.AccountOperation),
	}
}
