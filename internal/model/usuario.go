package model

import "time"

// Perfis de acesso. Apenas o Gerente de Operações pode ultrapassar o
// teto de desconto de 10%.
const (
	PerfilVendedora  = "Vendedora"
	PerfilEstoquista = "Estoquista"
	PerfilGerente    = "Gerente de Operações"
)

// SystemUserEmail identifica o usuário-sentinela usado quando uma
// operação chega sem principal autenticado (resolvido na borda, nunca
// dentro dos serviços).
const SystemUserEmail = "system@varejosync.com"

// Usuario do sistema, com perfil para autorização de descontos e
// operações de compensação.
type Usuario struct {
	ID        int64  `gorm:"column:id_usuario;primaryKey;autoIncrement"`
	Nome      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	SenhaHash string `gorm:"column:senha_hash;not null"`
	Perfil    string `gorm:"type:varchar(30);not null"`
	Ativo     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "usuario" }
