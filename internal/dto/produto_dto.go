package dto

import "github.com/shopspring/decimal"

type CriarProdutoRequest struct {
	Nome      string  `json:"nome" validate:"required,min=2"`
	Descricao *string `json:"descricao"`
}

type ProdutoResponse struct {
	IDProduto int64   `json:"id_produto"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao,omitempty"`
	Ativo     bool    `json:"ativo"`
}

type CriarVariacaoRequest struct {
	Cor     string          `json:"cor"     validate:"required"`
	Tamanho string          `json:"tamanho" validate:"required"`
	SKU     string          `json:"sku"     validate:"required"`
	Preco   decimal.Decimal `json:"preco"   validate:"min=0"`
}

// CriarVariacoesLoteRequest gera o produto cartesiano cores × tamanhos,
// derivando o SKU de cada combinação a partir do prefixo.
type CriarVariacoesLoteRequest struct {
	Cores     []string        `json:"cores"      validate:"required,min=1"`
	Tamanhos  []string        `json:"tamanhos"   validate:"required,min=1"`
	Preco     decimal.Decimal `json:"preco"      validate:"min=0"`
	SKUPrefix string          `json:"sku_prefix" validate:"required"`
}

type VariacaoResponse struct {
	IDVariacao int64           `json:"id_variacao"`
	IDProduto  int64           `json:"id_produto"`
	Cor        string          `json:"cor"`
	Tamanho    string          `json:"tamanho"`
	SKU        string          `json:"sku"`
	Preco      decimal.Decimal `json:"preco"`
	Ativo      bool            `json:"ativo"`
}

type VariacoesLoteResponse struct {
	Inseridas []VariacaoResponse `json:"inseridas"`
	Ignoradas int                `json:"ignoradas"`
}
