package handler

import (
	"net/http"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/middleware"
	"github.com/janamirelly/varejosync-poc/internal/service"

	"github.com/gin-gonic/gin"
)

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler { return &VendasHandler{svc: svc} }

// RegistrarVenda godoc
// @Summary      Registrar uma nova venda
// @Description  Cria uma venda atômica: valida preço e estoque, aplica descontos por item, debita estoque condicionalmente e grava as movimentações de SAIDA.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVendaRequest true "Itens e forma de pagamento"
// @Success      201  {object} dto.VendaResponse
// @Failure      400  {object} apierror.Error
// @Failure      403  {object} apierror.Error
// @Failure      409  {object} apierror.Error
// @Router       /v1/vendas [post]
func (h *VendasHandler) RegistrarVenda(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ator := middleware.GetAtor(c)

	resp, err := h.svc.RegistrarVenda(c.Request.Context(), ator, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CancelarVenda godoc
// @Summary      Cancelar venda (mesmo dia)
// @Description  Cancela uma venda concluída no dia, restaurando o estoque com movimentações de ENTRADA.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id_venda path string                   true "ID da venda"
// @Param        body     body dto.CancelarVendaRequest true "Motivo do cancelamento"
// @Success      200  {object} dto.VendaResponse
// @Failure      403  {object} apierror.Error
// @Failure      409  {object} apierror.Error
// @Router       /v1/vendas/{id_venda}/cancelar [post]
func (h *VendasHandler) CancelarVenda(c *gin.Context) {
	idVenda, ok := paramID(c, "id_venda")
	if !ok {
		return
	}
	var req dto.CancelarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CancelarVenda(c.Request.Context(), middleware.GetAtor(c), idVenda, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DevolverVenda godoc
// @Summary      Devolver venda (janela de dias)
// @Description  Registra a devolução integral de uma venda concluída dentro do prazo, restaurando o estoque.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id_venda path string                   true "ID da venda"
// @Param        body     body dto.DevolverVendaRequest true "Motivo da devolução"
// @Success      200  {object} dto.VendaResponse
// @Failure      403  {object} apierror.Error
// @Router       /v1/vendas/{id_venda}/devolver [post]
func (h *VendasHandler) DevolverVenda(c *gin.Context) {
	idVenda, ok := paramID(c, "id_venda")
	if !ok {
		return
	}
	var req dto.DevolverVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.DevolverVenda(c.Request.Context(), middleware.GetAtor(c), idVenda, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AplicarDescontoItem godoc
// @Summary      Ajustar desconto de um item
// @Description  Recalcula o desconto de uma linha já persistida (percentual ou valor) e os totais da venda.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id_venda path string                  true "ID da venda"
// @Param        id_item  path string                  true "ID do item"
// @Param        body     body dto.DescontoItemRequest true "Tipo, valor e motivo"
// @Success      200  {object} dto.TotaisVendaResponse
// @Failure      400  {object} apierror.Error
// @Failure      403  {object} apierror.Error
// @Router       /v1/vendas/{id_venda}/itens/{id_item}/desconto [patch]
func (h *VendasHandler) AplicarDescontoItem(c *gin.Context) {
	idVenda, ok := paramID(c, "id_venda")
	if !ok {
		return
	}
	idItem, ok := paramID(c, "id_item")
	if !ok {
		return
	}
	var req dto.DescontoItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AplicarDescontoItem(c.Request.Context(), middleware.GetAtor(c), idVenda, idItem, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObterVenda godoc
// @Summary      Consultar venda
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id_venda path string true "ID da venda"
// @Success      200  {object} dto.VendaResponse
// @Failure      404  {object} apierror.Error
// @Router       /v1/vendas/{id_venda} [get]
func (h *VendasHandler) ObterVenda(c *gin.Context) {
	idVenda, ok := paramID(c, "id_venda")
	if !ok {
		return
	}
	resp, err := h.svc.ObterVenda(c.Request.Context(), idVenda)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMovimentacoesVenda godoc
// @Summary      Movimentações de estoque da venda
// @Description  Lista a saída original e os eventuais estornos de compensação da venda.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id_venda path string true "ID da venda"
// @Success      200  {array}  dto.MovimentacaoResponse
// @Failure      404  {object} apierror.Error
// @Router       /v1/vendas/{id_venda}/movimentacoes [get]
func (h *VendasHandler) ListarMovimentacoesVenda(c *gin.Context) {
	idVenda, ok := paramID(c, "id_venda")
	if !ok {
		return
	}
	resp, err := h.svc.ListarMovimentacoesVenda(c.Request.Context(), idVenda)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVendas godoc
// @Summary      Listar vendas
// @Description  Lista paginada filtrada por data (default: hoje) e status.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        data   query string false "Data YYYY-MM-DD (default: hoje)"
// @Param        status query string false "CONCLUIDA | CANCELADA | DEVOLVIDA | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VendaListResponse
// @Router       /v1/vendas [get]
func (h *VendasHandler) ListarVendas(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacao(err.Error()))
		return
	}
	resp, err := h.svc.ListarVendas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
