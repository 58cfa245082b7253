package middleware

import (
	"net/http"
	"strconv"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/service"

	"github.com/gin-gonic/gin"
)

// BloqueioFiscal barra a operação quando a venda referenciada tem
// documento fiscal EMITIDA. A checagem roda antes do handler: nenhuma
// mutação acontece em venda bloqueada.
func BloqueioFiscal(vendas service.VendaService, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idVenda, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || idVenda <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				apierror.Validacao("identificador de venda inválido"))
			return
		}

		bloqueada, err := vendas.BloqueadaPorFiscal(c.Request.Context(), idVenda)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				apierror.Interno("Erro interno do servidor"))
			return
		}
		if bloqueada {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierror.New(apierror.CodigoBloqueioFiscal,
					"venda com documento fiscal emitido; cancele o documento antes"))
			return
		}
		c.Next()
	}
}
