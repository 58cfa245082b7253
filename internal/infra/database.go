package infra

import (
	"fmt"

	"github.com/janamirelly/varejosync-poc/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the full schema. Foreign keys are enforced by the
// database; monetary columns carry 2-decimal precision.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Produto{},
		&model.VariacaoProduto{},
		&model.Estoque{},
		&model.MovimentacaoEstoque{},
		&model.Venda{},
		&model.ItemVenda{},
		&model.DocumentoFiscal{},
		&model.Auditoria{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
