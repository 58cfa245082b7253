package handler

import (
	"net/http"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/middleware"
	"github.com/janamirelly/varejosync-poc/internal/service"

	"github.com/gin-gonic/gin"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// Consultar godoc
// @Summary      Consultar estoque de uma variação
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Param        id_variacao path string true "ID da variação"
// @Success      200  {object} dto.EstoqueResponse
// @Failure      404  {object} apierror.Error
// @Router       /v1/estoque/{id_variacao} [get]
func (h *EstoqueHandler) Consultar(c *gin.Context) {
	idVariacao, ok := paramID(c, "id_variacao")
	if !ok {
		return
	}
	resp, err := h.svc.Consultar(c.Request.Context(), idVariacao)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarMinimo godoc
// @Summary      Definir estoque mínimo
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id_variacao path string                         true "ID da variação"
// @Param        body        body dto.AtualizarEstoqueMinRequest true "Novo mínimo"
// @Success      200  {object} dto.EstoqueResponse
// @Router       /v1/estoque/{id_variacao}/minimo [put]
func (h *EstoqueHandler) AtualizarMinimo(c *gin.Context) {
	idVariacao, ok := paramID(c, "id_variacao")
	if !ok {
		return
	}
	var req dto.AtualizarEstoqueMinRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarMinimo(c.Request.Context(), idVariacao, req.EstoqueMin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarDetalhado godoc
// @Summary      Listar estoque detalhado
// @Description  Projeção de leitura com produto, variação, saldo e flag de abaixo do mínimo.
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.EstoqueDetalhadoItem
// @Router       /v1/estoque [get]
func (h *EstoqueHandler) ListarDetalhado(c *gin.Context) {
	resp, err := h.svc.ListarDetalhado(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimentacao godoc
// @Summary      Registrar movimentação manual
// @Description  ENTRADA e AJUSTE creditam; SAIDA debita condicionalmente ao saldo.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarMovimentacaoRequest true "Movimentação"
// @Success      201  {object} dto.MovimentacaoResponse
// @Failure      400  {object} apierror.Error
// @Router       /v1/movimentacoes [post]
func (h *EstoqueHandler) RegistrarMovimentacao(c *gin.Context) {
	var req dto.RegistrarMovimentacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimentacao(c.Request.Context(), middleware.GetAtor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarMovimentacoes godoc
// @Summary      Listar movimentações
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Param        id_variacao query int    false "Filtrar por variação"
// @Param        tipo        query string false "ENTRADA | SAIDA | AJUSTE"
// @Param        origem      query string false "MANUAL | VENDA | ESTORNO | DEVOLUCAO"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 100)"
// @Success      200  {object} dto.MovimentacaoListResponse
// @Router       /v1/movimentacoes [get]
func (h *EstoqueHandler) ListarMovimentacoes(c *gin.Context) {
	var filter dto.MovimentacaoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacao(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimentacoes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
