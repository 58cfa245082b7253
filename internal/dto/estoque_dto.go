package dto

// ─── Estoque ─────────────────────────────────────────────────────────────────

type EstoqueResponse struct {
	IDEstoque    int64  `json:"id_estoque"`
	IDVariacao   int64  `json:"id_variacao"`
	Quantidade   int    `json:"quantidade"`
	EstoqueMin   int    `json:"estoque_min"`
	AtualizadoEm string `json:"atualizado_em"`
}

type AtualizarEstoqueMinRequest struct {
	EstoqueMin int `json:"estoque_min" validate:"min=0"`
}

// EstoqueDetalhadoItem é a projeção de leitura usada pela tela de estoque.
type EstoqueDetalhadoItem struct {
	IDVariacao int64  `json:"id_variacao"`
	Produto    string `json:"produto"`
	Cor        string `json:"cor"`
	Tamanho    string `json:"tamanho"`
	SKU        string `json:"sku"`
	Quantidade int    `json:"quantidade"`
	EstoqueMin int    `json:"estoque_min"`
	Abaixo     bool   `json:"abaixo_minimo"`
}

// ─── Movimentações ───────────────────────────────────────────────────────────

type RegistrarMovimentacaoRequest struct {
	IDVariacao int64  `json:"id_variacao" validate:"required,gt=0"`
	Tipo       string `json:"tipo"        validate:"required"`
	Quantidade int    `json:"quantidade"  validate:"required,gt=0"`
	Observacao string `json:"observacao"  validate:"required,min=3"`
}

type MovimentacaoResponse struct {
	IDMovimentacao  int64  `json:"id_movimentacao"`
	IDVariacao      int64  `json:"id_variacao"`
	Tipo            string `json:"tipo"`
	Quantidade      int    `json:"quantidade"`
	Observacao      string `json:"observacao"`
	Origem          string `json:"origem"`
	IDVendaOrigem   *int64 `json:"id_venda_origem,omitempty"`
	IDUsuario       int64  `json:"id_usuario"`
	EstoqueAnterior int    `json:"estoque_anterior"`
	EstoqueAtual    int    `json:"estoque_atual"`
	CriadoEm        string `json:"criado_em"`
}

type MovimentacaoFilter struct {
	IDVariacao int64  `form:"id_variacao"`
	Tipo       string `form:"tipo"`
	Origem     string `form:"origem"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimentacaoListResponse struct {
	Data  []MovimentacaoResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
