package service

import (
	"github.com/dshemin/lockbox/internal/config"
	"github.com/dshemin/lockbox/internal/crypto"
	"github.com/dshemin/lockbox/internal/lockout"
	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/store"
)

type Services struct {
	VaultService   VaultService
	SessionService SessionService
	AppInfoService AppInfoService
}

func NewServices(engine crypto.CipherEngine, guard *lockout.Guard, journal store.AttemptJournal, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		VaultService:   NewVaultService(engine, guard, journal, logger),
		SessionService: NewSessionService(guard, journal, cfg.App, logger),
		AppInfoService: appInfoService,
	}, nil
}
