package handler

import (
	"net/http"

	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/middleware"
	"github.com/janamirelly/varejosync-poc/internal/service"

	"github.com/gin-gonic/gin"
)

type FiscalHandler struct{ svc service.FiscalService }

func NewFiscalHandler(svc service.FiscalService) *FiscalHandler { return &FiscalHandler{svc: svc} }

// Emitir godoc
// @Summary      Emitir documento fiscal
// @Description  Emite o documento fiscal simulado da venda: número sequencial, série 1 e chave de acesso derivada.
// @Tags         fiscal
// @Produce      json
// @Security     BearerAuth
// @Param        id_venda path string true "ID da venda"
// @Success      201  {object} dto.DocumentoFiscalResponse
// @Failure      409  {object} apierror.Error
// @Router       /v1/fiscal/emitir/{id_venda} [post]
func (h *FiscalHandler) Emitir(c *gin.Context) {
	idVenda, ok := paramID(c, "id_venda")
	if !ok {
		return
	}
	resp, err := h.svc.Emitir(c.Request.Context(), middleware.GetAtor(c), idVenda)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancelar godoc
// @Summary      Cancelar documento fiscal
// @Description  Cancela o documento EMITIDA da venda, liberando cancelamento e devolução.
// @Tags         fiscal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id_venda path string                    true "ID da venda"
// @Param        body     body dto.CancelarFiscalRequest true "Motivo"
// @Success      200  {object} dto.DocumentoFiscalResponse
// @Failure      404  {object} apierror.Error
// @Router       /v1/fiscal/cancelar/{id_venda} [post]
func (h *FiscalHandler) Cancelar(c *gin.Context) {
	idVenda, ok := paramID(c, "id_venda")
	if !ok {
		return
	}
	var req dto.CancelarFiscalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), middleware.GetAtor(c), idVenda, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObterPorVenda godoc
// @Summary      Consultar documento fiscal da venda
// @Tags         fiscal
// @Produce      json
// @Security     BearerAuth
// @Param        id_venda path string true "ID da venda"
// @Success      200  {object} dto.DocumentoFiscalResponse
// @Failure      404  {object} apierror.Error
// @Router       /v1/fiscal/{id_venda} [get]
func (h *FiscalHandler) ObterPorVenda(c *gin.Context) {
	idVenda, ok := paramID(c, "id_venda")
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorVenda(c.Request.Context(), idVenda)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
