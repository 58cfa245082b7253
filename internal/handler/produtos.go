package handler

import (
	"net/http"

	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarProdutoRequest true "Produto"
// @Success      201  {object} dto.ProdutoResponse
// @Router       /v1/produtos [post]
func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarProduto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.ProdutoResponse
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarProdutos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Consultar produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id_produto path string true "ID do produto"
// @Success      200  {object} dto.ProdutoResponse
// @Failure      404  {object} apierror.Error
// @Router       /v1/produtos/{id_produto} [get]
func (h *ProdutosHandler) Obter(c *gin.Context) {
	idProduto, ok := paramID(c, "id_produto")
	if !ok {
		return
	}
	resp, err := h.svc.ObterProduto(c.Request.Context(), idProduto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CriarVariacao godoc
// @Summary      Criar variação (cor × tamanho)
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id_produto path string                   true "ID do produto"
// @Param        body       body dto.CriarVariacaoRequest true "Variação"
// @Success      201  {object} dto.VariacaoResponse
// @Router       /v1/produtos/{id_produto}/variacoes [post]
func (h *ProdutosHandler) CriarVariacao(c *gin.Context) {
	idProduto, ok := paramID(c, "id_produto")
	if !ok {
		return
	}
	var req dto.CriarVariacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarVariacao(c.Request.Context(), idProduto, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CriarVariacoesLote godoc
// @Summary      Gerar variações em lote
// @Description  Produto cartesiano cores × tamanhos; SKUs já existentes são ignorados.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id_produto path string                        true "ID do produto"
// @Param        body       body dto.CriarVariacoesLoteRequest true "Cores, tamanhos, preço, prefixo de SKU"
// @Success      201  {object} dto.VariacoesLoteResponse
// @Router       /v1/produtos/{id_produto}/variacoes/lote [post]
func (h *ProdutosHandler) CriarVariacoesLote(c *gin.Context) {
	idProduto, ok := paramID(c, "id_produto")
	if !ok {
		return
	}
	var req dto.CriarVariacoesLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarVariacoesLote(c.Request.Context(), idProduto, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarVariacoes godoc
// @Summary      Listar variações de um produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id_produto path string true "ID do produto"
// @Success      200  {array} dto.VariacaoResponse
// @Router       /v1/produtos/{id_produto}/variacoes [get]
func (h *ProdutosHandler) ListarVariacoes(c *gin.Context) {
	idProduto, ok := paramID(c, "id_produto")
	if !ok {
		return
	}
	resp, err := h.svc.ListarVariacoes(c.Request.Context(), idProduto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesativarVariacao godoc
// @Summary      Desativar variação
// @Tags         produtos
// @Security     BearerAuth
// @Param        id_variacao path string true "ID da variação"
// @Success      204
// @Failure      404  {object} apierror.Error
// @Router       /v1/variacoes/{id_variacao} [delete]
func (h *ProdutosHandler) DesativarVariacao(c *gin.Context) {
	idVariacao, ok := paramID(c, "id_variacao")
	if !ok {
		return
	}
	if err := h.svc.DefinirVariacaoAtiva(c.Request.Context(), idVariacao, false); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReativarVariacao godoc
// @Summary      Reativar variação
// @Tags         produtos
// @Security     BearerAuth
// @Param        id_variacao path string true "ID da variação"
// @Success      204
// @Failure      404  {object} apierror.Error
// @Router       /v1/variacoes/{id_variacao}/reativar [post]
func (h *ProdutosHandler) ReativarVariacao(c *gin.Context) {
	idVariacao, ok := paramID(c, "id_variacao")
	if !ok {
		return
	}
	if err := h.svc.DefinirVariacaoAtiva(c.Request.Context(), idVariacao, true); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
