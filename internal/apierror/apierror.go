// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// Codigo classifies every expected business failure. Each code maps to a
// stable HTTP status so clients can distinguish input errors, authorization
// errors and conflicts without parsing messages.
type Codigo string

const (
	CodigoValidacao            Codigo = "VALIDACAO"
	CodigoProibido             Codigo = "PROIBIDO"
	CodigoNaoEncontrado        Codigo = "NAO_ENCONTRADO"
	CodigoVariacaoDesconhecida Codigo = "VARIACAO_DESCONHECIDA"
	CodigoVariacaoInativa      Codigo = "VARIACAO_INATIVA"
	CodigoPrecoDivergente      Codigo = "PRECO_DIVERGENTE"
	CodigoEstoqueInsuficiente  Codigo = "ESTOQUE_INSUFICIENTE"
	CodigoDescontoInvalido     Codigo = "DESCONTO_INVALIDO"
	CodigoMotivoObrigatorio    Codigo = "MOTIVO_OBRIGATORIO"
	CodigoPrazoExpirado        Codigo = "PRAZO_EXPIRADO"
	CodigoBloqueioFiscal       Codigo = "BLOQUEIO_FISCAL"
	CodigoConflito             Codigo = "CONFLITO"
	CodigoInterno              Codigo = "ERRO_INTERNO"
)

// Error is the typed business error surfaced by services. Detalhes carries
// structured context (e.g. estoque_atual vs. solicitado) so the caller can
// correct and retry.
type Error struct {
	Codigo   Codigo                 `json:"codigo"`
	Mensagem string                 `json:"erro"`
	Detalhes map[string]interface{} `json:"detalhes,omitempty"`
}

func (e *Error) Error() string { return e.Mensagem }

// WithDetalhe returns e with one more structured detail attached.
func (e *Error) WithDetalhe(chave string, valor interface{}) *Error {
	if e.Detalhes == nil {
		e.Detalhes = make(map[string]interface{})
	}
	e.Detalhes[chave] = valor
	return e
}

func New(codigo Codigo, mensagem string) *Error {
	return &Error{Codigo: codigo, Mensagem: mensagem}
}

func Validacao(mensagem string) *Error { return New(CodigoValidacao, mensagem) }
func Proibido(mensagem string) *Error  { return New(CodigoProibido, mensagem) }
func NaoEncontrado(msg string) *Error  { return New(CodigoNaoEncontrado, msg) }
func Conflito(mensagem string) *Error  { return New(CodigoConflito, mensagem) }
func Interno(mensagem string) *Error   { return New(CodigoInterno, mensagem) }

// HTTPStatus maps an error code to its status class.
func HTTPStatus(codigo Codigo) int {
	switch codigo {
	case CodigoValidacao, CodigoVariacaoDesconhecida, CodigoVariacaoInativa,
		CodigoEstoqueInsuficiente, CodigoDescontoInvalido, CodigoMotivoObrigatorio:
		return http.StatusBadRequest
	case CodigoProibido, CodigoPrazoExpirado, CodigoBloqueioFiscal:
		return http.StatusForbidden
	case CodigoNaoEncontrado:
		return http.StatusNotFound
	case CodigoPrecoDivergente, CodigoConflito:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Erro   string            `json:"erro"`
	Codigo Codigo            `json:"codigo"`
	Campos map[string]string `json:"campos"`
}

func NewValidation(campos map[string]string) *ValidationError {
	return &ValidationError{Erro: "Erro de validação", Codigo: CodigoValidacao, Campos: campos}
}
