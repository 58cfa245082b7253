package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// TxRunner executa callbacks dentro de uma transação GORM, serializando as
// seções críticas de escrita com um mutex próprio — o substituto explícito
// da antiga fila global de transações. Pertence à camada de persistência e
// é injetado nos serviços, o que permite múltiplos stores em teste.
//
// Com db == nil (testes unitários) o callback roda direto com tx nil, no
// mesmo espírito do runTx dos serviços: os stubs ignoram o parâmetro tx.
type TxRunner struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewTxRunner(db *gorm.DB) *TxRunner { return &TxRunner{db: db} }

// Run serializa e executa fn dentro de uma transação. Qualquer erro do
// callback provoca rollback completo; nada parcial fica visível.
func (r *TxRunner) Run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return fn(nil)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}
