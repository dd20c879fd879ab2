package service

import (
	"github.com/refugiapp/refugiapp/internal/config"
	"github.com/refugiapp/refugiapp/internal/crypto"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/store"
)

// Services aggregates the server-side use cases.
type Services struct {
	AuthService     AuthService
	ResidentService ResidentService
	ItemService     ItemService
	ReportService   ReportService
	AppInfoService  AppInfoService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	residentService := NewResidentValidationService().Wrap(
		NewResidentService(repositories.ResidentRepository, logger),
	)

	return &Services{
		AuthService: NewAuthService(
			repositories.AccountRepository,
			repositories.PasswordResetRepository,
			crypto.NewPasswordHasher(),
			crypto.NewTokenGenerator(),
			NewLogNotifier(logger),
			cfg.App,
			logger,
		),
		ResidentService: residentService,
		ItemService:     NewItemService(repositories.ItemRepository, logger),
		ReportService:   NewReportService(repositories.ReportRepository, repositories.ResidentRepository, logger),
		AppInfoService:  appInfoService,
	}, nil
}
