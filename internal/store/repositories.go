package store

import (
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/utils"
)

// Repositories aggregates every repository backed by one [DB].
type Repositories struct {
	AccountRepository       AccountRepository
	PasswordResetRepository PasswordResetRepository
	ResidentRepository      ResidentRepository
	ItemRepository          ItemRepository
	ReportRepository        ReportRepository
}

// NewRepositories wires all repositories to db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		AccountRepository:       NewAccountRepository(db, log),
		PasswordResetRepository: NewPasswordResetRepository(db, log),
		ResidentRepository:      NewResidentRepository(db, utils.NewUUIDGenerator(), log),
		ItemRepository:          NewItemRepository(db, log),
		ReportRepository:        NewReportRepository(db, log),
	}
}
