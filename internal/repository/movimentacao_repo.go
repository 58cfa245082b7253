package repository

import (
	"context"

	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/model"

	"gorm.io/gorm"
)

// MovimentacaoRepository é o log append-only de mudanças de estoque.
// Não existe API de update nem de delete.
type MovimentacaoRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimentacaoEstoque) error
	List(ctx context.Context, filter dto.MovimentacaoFilter) ([]model.MovimentacaoEstoque, int64, error)
	ListByVenda(ctx context.Context, idVenda int64) ([]model.MovimentacaoEstoque, error)
}

type movimentacaoRepo struct{ db *gorm.DB }

func NewMovimentacaoRepository(db *gorm.DB) MovimentacaoRepository {
	return &movimentacaoRepo{db: db}
}

func (r *movimentacaoRepo) CreateTx(tx *gorm.DB, m *model.MovimentacaoEstoque) error {
	return tx.Create(m).Error
}

func (r *movimentacaoRepo) List(ctx context.Context, filter dto.MovimentacaoFilter) ([]model.MovimentacaoEstoque, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimentacaoEstoque{})
	if filter.IDVariacao > 0 {
		q = q.Where("id_variacao = ?", filter.IDVariacao)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Origem != "" {
		q = q.Where("origem = ?", filter.Origem)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movs []model.MovimentacaoEstoque
	err := q.Order("criado_em DESC").Offset(offset).Limit(limit).Find(&movs).Error
	return movs, total, err
}

func (r *movimentacaoRepo) ListByVenda(ctx context.Context, idVenda int64) ([]model.MovimentacaoEstoque, error) {
	var movs []model.MovimentacaoEstoque
	err := r.db.WithContext(ctx).
		Where("id_venda_origem = ?", idVenda).
		Order("criado_em ASC").
		Find(&movs).Error
	return movs, err
}
