package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemVendaRequest é um item do carrinho. O preço unitário é obrigatório:
// o servidor nunca confia em preço ausente e rejeita divergência acima de
// 0,01 contra o catálogo.
type ItemVendaRequest struct {
	IDVariacao      int64           `json:"id_variacao"      validate:"required,gt=0"`
	Quantidade      int             `json:"quantidade"       validate:"required,gt=0"`
	PrecoUnit       decimal.Decimal `json:"preco_unit"       validate:"required"`
	DescontoPercent decimal.Decimal `json:"desconto_percent" validate:"min=0,max=100"`
	MotivoDesconto  *string         `json:"motivo_desconto"`
}

type RegistrarVendaRequest struct {
	FormaPagamento string             `json:"forma_pagamento" validate:"required"`
	Itens          []ItemVendaRequest `json:"itens"           validate:"required,min=1,dive"`
}

type CancelarVendaRequest struct {
	Motivo string `json:"motivo" validate:"required"`
}

type DevolverVendaRequest struct {
	Motivo string `json:"motivo" validate:"required"`
}

// DescontoItemRequest ajusta o desconto de um item já persistido.
// Tipo "percent" interpreta Valor como percentual; "valor" como absoluto.
type DescontoItemRequest struct {
	Tipo   string          `json:"tipo"   validate:"required,oneof=percent valor"`
	Valor  decimal.Decimal `json:"valor"  validate:"required"`
	Motivo string          `json:"motivo" validate:"required,min=3"`
}

// VendaFilter is bound from the query string of GET /vendas.
type VendaFilter struct {
	Data   string `form:"data"`   // YYYY-MM-DD; vazio = hoje
	Status string `form:"status"` // CONCLUIDA | CANCELADA | DEVOLVIDA | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVendaResponse struct {
	IDItem            int64           `json:"id_item"`
	IDVariacao        int64           `json:"id_variacao"`
	SKU               string          `json:"sku,omitempty"`
	Quantidade        int             `json:"quantidade"`
	PrecoUnitOriginal decimal.Decimal `json:"preco_unit_original"`
	DescontoPercent   decimal.Decimal `json:"desconto_percent"`
	DescontoValor     decimal.Decimal `json:"desconto_valor"`
	MotivoDesconto    *string         `json:"motivo_desconto,omitempty"`
	PrecoUnit         decimal.Decimal `json:"preco_unit"`
	Subtotal          decimal.Decimal `json:"subtotal"`
}

type VendaResponse struct {
	IDVenda        int64               `json:"id_venda"`
	Status         string              `json:"status"`
	FormaPagamento string              `json:"forma_pagamento"`
	TotalBruto     decimal.Decimal     `json:"total_bruto"`
	DescontoTotal  decimal.Decimal     `json:"desconto_total"`
	Total          decimal.Decimal     `json:"total"`
	Motivo         *string             `json:"motivo,omitempty"`
	Itens          []ItemVendaResponse `json:"itens"`
	CriadoEm       string              `json:"criado_em"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// TotaisVendaResponse devolve o resultado de um ajuste de desconto:
// a linha recalculada e os agregados da venda após a soma das linhas.
type TotaisVendaResponse struct {
	IDVenda            int64           `json:"id_venda"`
	IDItem             int64           `json:"id_item"`
	SubtotalBruto      decimal.Decimal `json:"subtotal_bruto"`
	DescontoValor      decimal.Decimal `json:"desconto_valor"`
	DescontoPercent    decimal.Decimal `json:"desconto_percent"`
	SubtotalFinal      decimal.Decimal `json:"subtotal_final"`
	TotalVendaBruto    decimal.Decimal `json:"total_venda_bruto"`
	TotalVendaDesconto decimal.Decimal `json:"total_venda_desconto"`
	TotalVendaFinal    decimal.Decimal `json:"total_venda_final"`
}
