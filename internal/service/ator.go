package service

import "github.com/janamirelly/varejosync-poc/internal/model"

// Ator é o principal autenticado em nome de quem uma operação executa.
// Serviços recebem sempre um Ator resolvido; o fallback para o usuário de
// sistema acontece na borda HTTP, nunca aqui.
type Ator struct {
	ID     int64
	Nome   string
	Perfil string
}

// EhGerente informa se o ator pode exceder o teto de desconto e executar
// compensações restritas.
func (a Ator) EhGerente() bool { return a.Perfil == model.PerfilGerente }
