package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de venda. CONCLUIDA é o único estado de onde se alcança
// CANCELADA ou DEVOLVIDA; as transições são definitivas.
const (
	VendaConcluida = "CONCLUIDA"
	VendaCancelada = "CANCELADA"
	VendaDevolvida = "DEVOLVIDA"
)

// Formas de pagamento aceitas no PDV.
var FormasPagamento = []string{"DINHEIRO", "CREDITO", "DEBITO", "PIX", "OUTRO"}

// Venda é o cabeçalho de uma transação concluída no PDV.
// total_bruto = soma(quantidade × preco_unit_original) dos itens;
// total = total_bruto - desconto_total, sempre sobre valores já
// arredondados a 2 casas.
type Venda struct {
	ID                 int64           `gorm:"column:id_venda;primaryKey;autoIncrement"`
	IDUsuario          int64           `gorm:"column:id_usuario;not null;index"`
	Status             string          `gorm:"type:varchar(12);not null;default:'CONCLUIDA'"`
	FormaPagamento     string          `gorm:"column:forma_pagamento;type:varchar(12);not null"`
	TotalBruto         decimal.Decimal `gorm:"column:total_bruto;type:decimal(12,2);not null"`
	DescontoTotal      decimal.Decimal `gorm:"column:desconto_total;type:decimal(12,2);not null;default:0"`
	Total              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MotivoCancelamento *string         `gorm:"column:motivo_cancelamento"`
	MotivoDevolucao    *string         `gorm:"column:motivo_devolucao"`
	DevolvidoEm        *time.Time      `gorm:"column:devolvido_em"`
	CriadoEm           time.Time       `gorm:"column:criado_em;autoCreateTime"`

	Itens []ItemVenda `gorm:"foreignKey:IDVenda"`
}

func (Venda) TableName() string { return "venda" }

// ItemVenda pertence a exatamente uma venda (ciclo de vida em cascata).
// Invariante: subtotal = quantidade × preco_unit_original − desconto_valor,
// com desconto_valor estritamente menor que o bruto da linha.
type ItemVenda struct {
	ID                int64           `gorm:"column:id_item;primaryKey;autoIncrement"`
	IDVenda           int64           `gorm:"column:id_venda;not null;index;constraint:OnDelete:CASCADE"`
	IDVariacao        int64           `gorm:"column:id_variacao;not null;index"`
	Quantidade        int             `gorm:"not null"`
	PrecoUnitOriginal decimal.Decimal `gorm:"column:preco_unit_original;type:decimal(10,2);not null"`
	DescontoPercent   decimal.Decimal `gorm:"column:desconto_percent;type:decimal(5,2);not null;default:0"`
	DescontoValor     decimal.Decimal `gorm:"column:desconto_valor;type:decimal(10,2);not null;default:0"`
	MotivoDesconto    *string         `gorm:"column:motivo_desconto"`
	PrecoUnit         decimal.Decimal `gorm:"column:preco_unit;type:decimal(10,2);not null"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Variacao *VariacaoProduto `gorm:"foreignKey:IDVariacao"`
}

func (ItemVenda) TableName() string { return "item_venda" }
