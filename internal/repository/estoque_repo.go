package repository

import (
	"context"
	"time"

	"github.com/janamirelly/varejosync-poc/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EstoqueRepository é o ledger de quantidade por variação. Toda mutação
// acontece dentro da transação do chamador (variantes Tx); o repositório
// nunca comita por conta própria.
type EstoqueRepository interface {
	// GarantirTx cria a linha zerada se ainda não existir. Idempotente:
	// chamada dupla não duplica linha nem zera quantidade existente.
	GarantirTx(tx *gorm.DB, idVariacao int64) error
	// CreditarTx soma qtd incondicionalmente (ENTRADA e estornos).
	CreditarTx(tx *gorm.DB, idVariacao int64, qtd int) error
	// DebitarTx subtrai qtd apenas quando quantidade >= qtd. Retorna se
	// exatamente uma linha casou — zero linhas distingue corrida perdida
	// de falta genuína (o chamador pré-checou).
	DebitarTx(tx *gorm.DB, idVariacao int64, qtd int) (bool, error)
	// ObterTx lê a linha dentro da transação do chamador.
	ObterTx(tx *gorm.DB, idVariacao int64) (*model.Estoque, error)
	// Consultar devolve a linha de estoque, criando-a se necessário.
	Consultar(ctx context.Context, idVariacao int64) (*model.Estoque, error)
	AtualizarMinimo(ctx context.Context, idVariacao int64, estoqueMin int) error
	ListarDetalhado(ctx context.Context) ([]model.Estoque, error)
}

type estoqueRepo struct{ db *gorm.DB }

func NewEstoqueRepository(db *gorm.DB) EstoqueRepository { return &estoqueRepo{db: db} }

func (r *estoqueRepo) GarantirTx(tx *gorm.DB, idVariacao int64) error {
	linha := model.Estoque{IDVariacao: idVariacao, Quantidade: 0, EstoqueMin: 10}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id_variacao"}},
		DoNothing: true,
	}).Create(&linha).Error
}

func (r *estoqueRepo) CreditarTx(tx *gorm.DB, idVariacao int64, qtd int) error {
	return tx.Model(&model.Estoque{}).
		Where("id_variacao = ?", idVariacao).
		Updates(map[string]interface{}{
			"quantidade":    gorm.Expr("quantidade + ?", qtd),
			"atualizado_em": time.Now().UTC(),
		}).Error
}

func (r *estoqueRepo) DebitarTx(tx *gorm.DB, idVariacao int64, qtd int) (bool, error) {
	res := tx.Model(&model.Estoque{}).
		Where("id_variacao = ? AND quantidade >= ?", idVariacao, qtd).
		Updates(map[string]interface{}{
			"quantidade":    gorm.Expr("quantidade - ?", qtd),
			"atualizado_em": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *estoqueRepo) ObterTx(tx *gorm.DB, idVariacao int64) (*model.Estoque, error) {
	var e model.Estoque
	err := tx.Where("id_variacao = ?", idVariacao).First(&e).Error
	return &e, err
}

func (r *estoqueRepo) Consultar(ctx context.Context, idVariacao int64) (*model.Estoque, error) {
	if err := r.GarantirTx(r.db.WithContext(ctx), idVariacao); err != nil {
		return nil, err
	}
	var e model.Estoque
	err := r.db.WithContext(ctx).Where("id_variacao = ?", idVariacao).First(&e).Error
	return &e, err
}

func (r *estoqueRepo) AtualizarMinimo(ctx context.Context, idVariacao int64, estoqueMin int) error {
	return r.db.WithContext(ctx).Model(&model.Estoque{}).
		Where("id_variacao = ?", idVariacao).
		Updates(map[string]interface{}{
			"estoque_min":   estoqueMin,
			"atualizado_em": time.Now().UTC(),
		}).Error
}

func (r *estoqueRepo) ListarDetalhado(ctx context.Context) ([]model.Estoque, error) {
	var linhas []model.Estoque
	err := r.db.WithContext(ctx).
		Preload("Variacao").Preload("Variacao.Produto").
		Order("id_variacao ASC").
		Find(&linhas).Error
	return linhas, err
}
