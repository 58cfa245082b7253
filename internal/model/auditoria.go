package model

import "time"

// Auditoria registra ações relevantes dos usuários. Gravada de forma
// assíncrona (fila redis + worker); a falha do registro nunca aborta a
// transação de negócio que o originou.
type Auditoria struct {
	ID        int64     `gorm:"column:id_auditoria;primaryKey;autoIncrement"`
	IDUsuario *int64    `gorm:"column:id_usuario;index"`
	Acao      string    `gorm:"not null"`
	Recurso   string    `gorm:"not null"`
	Detalhes  *string   `gorm:"column:detalhes"`
	IP        *string   `gorm:"column:ip"`
	UserAgent *string   `gorm:"column:user_agent"`
	CriadoEm  time.Time `gorm:"column:criado_em;autoCreateTime"`
}

func (Auditoria) TableName() string { return "auditoria" }
