package repository

import (
	"context"

	"github.com/janamirelly/varejosync-poc/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id int64) (*model.Produto, error)
	List(ctx context.Context) ([]model.Produto, error)
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id int64) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Variacoes").First(&p, "id_produto = ?", id).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Preload("Variacoes").Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

// VariacaoEstoque é a projeção usada na validação de carrinho: catálogo e
// saldo em uma consulta só, para checar preço/atividade/estoque antes do
// débito condicional.
type VariacaoEstoque struct {
	IDVariacao   int64
	Preco        decimal.Decimal
	Ativo        bool
	EstoqueAtual int
}

type VariacaoRepository interface {
	Create(ctx context.Context, v *model.VariacaoProduto) error
	// CreateLote insere ignorando SKUs já existentes; retorna quantas
	// linhas entraram de fato.
	CreateLote(ctx context.Context, vs []model.VariacaoProduto) (int, error)
	FindByID(ctx context.Context, id int64) (*model.VariacaoProduto, error)
	ListByProduto(ctx context.Context, idProduto int64) ([]model.VariacaoProduto, error)
	SetAtivo(ctx context.Context, id int64, ativo bool) error
	// BuscarComEstoqueTx resolve catálogo + saldo para um conjunto de
	// variações. Variações sem linha de estoque vêm com saldo zero.
	BuscarComEstoqueTx(tx *gorm.DB, ids []int64) (map[int64]VariacaoEstoque, error)
}

type variacaoRepo struct{ db *gorm.DB }

func NewVariacaoRepository(db *gorm.DB) VariacaoRepository { return &variacaoRepo{db: db} }

func (r *variacaoRepo) Create(ctx context.Context, v *model.VariacaoProduto) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *variacaoRepo) CreateLote(ctx context.Context, vs []model.VariacaoProduto) (int, error) {
	if len(vs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		DoNothing: true,
	}).Create(&vs)
	return int(res.RowsAffected), res.Error
}

func (r *variacaoRepo) FindByID(ctx context.Context, id int64) (*model.VariacaoProduto, error) {
	var v model.VariacaoProduto
	err := r.db.WithContext(ctx).Preload("Produto").First(&v, "id_variacao = ?", id).Error
	return &v, err
}

func (r *variacaoRepo) ListByProduto(ctx context.Context, idProduto int64) ([]model.VariacaoProduto, error) {
	var vs []model.VariacaoProduto
	err := r.db.WithContext(ctx).
		Where("id_produto = ?", idProduto).
		Order("sku ASC").
		Find(&vs).Error
	return vs, err
}

func (r *variacaoRepo) SetAtivo(ctx context.Context, id int64, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.VariacaoProduto{}).
		Where("id_variacao = ?", id).
		Update("ativo", ativo).Error
}

func (r *variacaoRepo) BuscarComEstoqueTx(tx *gorm.DB, ids []int64) (map[int64]VariacaoEstoque, error) {
	var linhas []VariacaoEstoque
	err := tx.Model(&model.VariacaoProduto{}).
		Select("variacao_produto.id_variacao AS id_variacao, variacao_produto.preco AS preco, variacao_produto.ativo AS ativo, COALESCE(estoque.quantidade, 0) AS estoque_atual").
		Joins("LEFT JOIN estoque ON estoque.id_variacao = variacao_produto.id_variacao").
		Where("variacao_produto.id_variacao IN ?", ids).
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int64]VariacaoEstoque, len(linhas))
	for _, l := range linhas {
		out[l.IDVariacao] = l
	}
	return out, nil
}
