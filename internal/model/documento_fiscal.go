package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FiscalEmitida   = "EMITIDA"
	FiscalCancelada = "CANCELADA"
)

// DocumentoFiscal é o recibo fiscal simulado de uma venda (zero ou um por
// venda). Enquanto estiver EMITIDA, a venda fica bloqueada para
// cancelamento e devolução.
type DocumentoFiscal struct {
	ID                 int64           `gorm:"column:id_documento;primaryKey;autoIncrement"`
	IDVenda            int64           `gorm:"column:id_venda;uniqueIndex;not null"`
	Numero             int64           `gorm:"not null"`
	Serie              string          `gorm:"type:varchar(4);not null;default:'1'"`
	Status             string          `gorm:"type:varchar(12);not null;default:'EMITIDA'"`
	ChaveAcesso        string          `gorm:"column:chave_acesso;uniqueIndex;not null"`
	ValorTotal         decimal.Decimal `gorm:"column:valor_total;type:decimal(12,2);not null"`
	MotivoCancelamento *string         `gorm:"column:motivo_cancelamento"`
	CanceladoEm        *time.Time      `gorm:"column:cancelado_em"`
	CriadoEm           time.Time       `gorm:"column:criado_em;autoCreateTime"`
}

func (DocumentoFiscal) TableName() string { return "documento_fiscal" }
