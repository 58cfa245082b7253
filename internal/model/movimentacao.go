package model

import "time"

// Tipos de movimentação de estoque.
const (
	MovEntrada = "ENTRADA"
	MovSaida   = "SAIDA"
	MovAjuste  = "AJUSTE"
)

// Origem de uma movimentação — vínculo explícito com a venda geradora,
// em vez de depender do parse do texto de observação.
const (
	OrigemManual    = "MANUAL"
	OrigemVenda     = "VENDA"
	OrigemEstorno   = "ESTORNO"
	OrigemDevolucao = "DEVOLUCAO"
)

// MovimentacaoEstoque registra cada mudança de estoque de uma variação.
// Append-only: nunca é atualizada nem removida. A observação mantém o
// texto legível ("Venda #<id>", "Estorno Venda #<id> | Motivo: ..."),
// mas a classificação vem de Origem + IDVendaOrigem.
type MovimentacaoEstoque struct {
	ID            int64     `gorm:"column:id_movimentacao;primaryKey;autoIncrement"`
	IDVariacao    int64     `gorm:"column:id_variacao;not null;index"`
	Tipo          string    `gorm:"type:varchar(10);not null"` // ENTRADA | SAIDA | AJUSTE
	Quantidade    int       `gorm:"not null"`                  // sempre > 0
	Observacao    string    `gorm:"not null"`
	Origem        string    `gorm:"type:varchar(12);not null;default:'MANUAL'"`
	IDVendaOrigem *int64    `gorm:"column:id_venda_origem;index"`
	IDUsuario     int64     `gorm:"column:id_usuario;not null;index"`
	CriadoEm      time.Time `gorm:"column:criado_em;autoCreateTime"`

	Variacao *VariacaoProduto `gorm:"foreignKey:IDVariacao"`
}

func (MovimentacaoEstoque) TableName() string { return "movimentacao_estoque" }
