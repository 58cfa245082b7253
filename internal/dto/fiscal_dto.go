package dto

import "github.com/shopspring/decimal"

type CancelarFiscalRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type DocumentoFiscalResponse struct {
	IDDocumento int64           `json:"id_documento"`
	IDVenda     int64           `json:"id_venda"`
	Numero      int64           `json:"numero"`
	Serie       string          `json:"serie"`
	Status      string          `json:"status"`
	ChaveAcesso string          `json:"chave_acesso"`
	ValorTotal  decimal.Decimal `json:"valor_total"`
	CriadoEm    string          `json:"criado_em"`
}
