package http

import (
	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validators.NewRequestValidator(),
		logger:    logger,
	}
}
