package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto agrupa variações (cor × tamanho) vendáveis.
type Produto struct {
	ID        int64   `gorm:"column:id_produto;primaryKey;autoIncrement"`
	Nome      string  `gorm:"index;not null"`
	Descricao *string `gorm:"column:descricao"`
	Ativo     bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Variacoes []VariacaoProduto `gorm:"foreignKey:IDProduto"`
}

func (Produto) TableName() string { return "produto" }

// VariacaoProduto é o SKU concreto de um produto (cor × tamanho).
// Uma vez referenciada por um item de venda, o preço gravado no item é
// imutável — alterações de preço aqui valem apenas para vendas futuras.
type VariacaoProduto struct {
	ID        int64           `gorm:"column:id_variacao;primaryKey;autoIncrement"`
	IDProduto int64           `gorm:"column:id_produto;not null;index"`
	Cor       string          `gorm:"not null"`
	Tamanho   string          `gorm:"not null"`
	SKU       string          `gorm:"column:sku;uniqueIndex;not null"`
	Preco     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Ativo     bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Produto *Produto `gorm:"foreignKey:IDProduto"`
}

func (VariacaoProduto) TableName() string { return "variacao_produto" }
