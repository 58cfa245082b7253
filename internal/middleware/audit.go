package middleware

import (
	"context"
	"time"

	"github.com/janamirelly/varejosync-poc/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Auditoria registra, de forma assíncrona, toda requisição de escrita que
// foi aceita. Fire and forget: falha na fila é logada e a resposta segue
// inalterada.
func Auditoria(dispatcher *worker.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
		default:
			return
		}
		if c.Writer.Status() >= 400 {
			return
		}

		ator := GetAtor(c)
		var idUsuario *int64
		if ator.ID > 0 {
			id := ator.ID
			idUsuario = &id
		}
		ip := c.ClientIP()
		ua := c.Request.UserAgent()
		payload := worker.AuditoriaPayload{
			IDUsuario: idUsuario,
			Acao:      c.Request.Method,
			Recurso:   c.FullPath(),
			IP:        &ip,
			UserAgent: &ua,
		}

		// Fila própria com timeout curto: a auditoria nunca segura a resposta.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := dispatcher.EnqueueAuditoria(ctx, payload); err != nil {
			log.Warn().Err(err).Str("recurso", payload.Recurso).Msg("audit enqueue failed")
		}
	}
}
