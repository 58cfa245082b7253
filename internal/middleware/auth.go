package middleware

import (
	"net/http"
	"strings"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
	AtorKey   = "ator"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Nome   string `json:"nome"`
	Perfil string `json:"perfil"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New(apierror.CodigoProibido, "autenticação requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New(apierror.CodigoProibido, "token inválido ou expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(AtorKey, service.Ator{ID: claims.UserID, Nome: claims.Nome, Perfil: claims.Perfil})
		c.Next()
	}
}

// ResolverAtor garante que sempre exista um Ator no contexto: quando a
// rota não passou pelo JWTAuth (token ausente aceito), cai no usuário de
// sistema. Serviços nunca veem principal vazio.
func ResolverAtor(sistema service.Ator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(AtorKey); !ok {
			c.Set(AtorKey, sistema)
		}
		c.Next()
	}
}

// RequireGerente rejects requests whose JWT profile is not the operations
// manager.
func RequireGerente() gin.HandlerFunc {
	return RequirePerfil(model.PerfilGerente)
}

// RequirePerfil rejects requests whose JWT profile is not in the allowed list.
func RequirePerfil(perfis ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(perfis))
	for _, p := range perfis {
		allowed[p] = true
	}
	return func(c *gin.Context) {
		ator := GetAtor(c)
		if !allowed[ator.Perfil] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierror.Proibido("permissões insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

// GetAtor retrieves the resolved acting principal from the Gin context.
func GetAtor(c *gin.Context) service.Ator {
	ator, _ := c.MustGet(AtorKey).(service.Ator)
	return ator
}
