package repository

import (
	"context"

	"github.com/janamirelly/varejosync-poc/internal/model"

	"gorm.io/gorm"
)

type DocumentoFiscalRepository interface {
	FindByVenda(ctx context.Context, idVenda int64) (*model.DocumentoFiscal, error)
	FindByVendaTx(tx *gorm.DB, idVenda int64) (*model.DocumentoFiscal, error)
	// ProximoNumeroTx devolve MAX(numero)+1. Sequencial apenas sob a
	// serialização do TxRunner; nunca chamar fora dela.
	ProximoNumeroTx(tx *gorm.DB) (int64, error)
	CreateTx(tx *gorm.DB, doc *model.DocumentoFiscal) error
	// CancelarTx só transiciona documentos EMITIDA; retorna se casou.
	CancelarTx(tx *gorm.DB, idVenda int64, motivo string) (bool, error)
}

type documentoFiscalRepo struct{ db *gorm.DB }

func NewDocumentoFiscalRepository(db *gorm.DB) DocumentoFiscalRepository {
	return &documentoFiscalRepo{db: db}
}

func (r *documentoFiscalRepo) FindByVenda(ctx context.Context, idVenda int64) (*model.DocumentoFiscal, error) {
	return r.FindByVendaTx(r.db.WithContext(ctx), idVenda)
}

func (r *documentoFiscalRepo) FindByVendaTx(tx *gorm.DB, idVenda int64) (*model.DocumentoFiscal, error) {
	var doc model.DocumentoFiscal
	err := tx.Where("id_venda = ?", idVenda).First(&doc).Error
	return &doc, err
}

func (r *documentoFiscalRepo) ProximoNumeroTx(tx *gorm.DB) (int64, error) {
	var max int64
	err := tx.Model(&model.DocumentoFiscal{}).
		Select("COALESCE(MAX(numero), 0)").
		Scan(&max).Error
	return max + 1, err
}

func (r *documentoFiscalRepo) CreateTx(tx *gorm.DB, doc *model.DocumentoFiscal) error {
	return tx.Create(doc).Error
}

func (r *documentoFiscalRepo) CancelarTx(tx *gorm.DB, idVenda int64, motivo string) (bool, error) {
	res := tx.Model(&model.DocumentoFiscal{}).
		Where("id_venda = ? AND status = ?", idVenda, model.FiscalEmitida).
		Updates(map[string]interface{}{
			"status":              model.FiscalCancelada,
			"motivo_cancelamento": motivo,
			"cancelado_em":        gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
