package model

import "time"

// Estoque é a linha mutável de quantidade de uma variação (1:1).
// Criada sob demanda na primeira referência à variação; a quantidade
// nunca fica negativa — toda baixa passa pelo update condicional do
// repositório (quantidade >= pedido).
type Estoque struct {
	ID           int64     `gorm:"column:id_estoque;primaryKey;autoIncrement"`
	IDVariacao   int64     `gorm:"column:id_variacao;uniqueIndex;not null"`
	Quantidade   int       `gorm:"not null;default:0"`
	EstoqueMin   int       `gorm:"column:estoque_min;not null;default:10"`
	AtualizadoEm time.Time `gorm:"column:atualizado_em;autoUpdateTime"`

	Variacao *VariacaoProduto `gorm:"foreignKey:IDVariacao"`
}

func (Estoque) TableName() string { return "estoque" }
