package repository

import (
	"context"
	"time"

	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VendaRepository interface {
	// CreateTx persiste o cabeçalho e os itens na mesma transação.
	CreateTx(tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id int64) (*model.Venda, error)
	FindByIDTx(tx *gorm.DB, id int64) (*model.Venda, error)
	FindItensTx(tx *gorm.DB, idVenda int64) ([]model.ItemVenda, error)
	FindItemTx(tx *gorm.DB, idVenda, idItem int64) (*model.ItemVenda, error)
	// MarcarCanceladaTx faz a transição CONCLUIDA→CANCELADA de forma
	// condicional; retorna se exatamente uma linha casou (CAS por status).
	MarcarCanceladaTx(tx *gorm.DB, id int64, motivo string) (bool, error)
	MarcarDevolvidaTx(tx *gorm.DB, id int64, motivo string, quando time.Time) (bool, error)
	UpdateItemDescontoTx(tx *gorm.DB, item *model.ItemVenda) error
	UpdateTotaisTx(tx *gorm.DB, idVenda int64, bruto, desconto, total decimal.Decimal) error
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) CreateTx(tx *gorm.DB, v *model.Venda) error {
	return tx.Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id int64) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Itens.Variacao").
		First(&v, "id_venda = ?", id).Error
	return &v, err
}

func (r *vendaRepo) FindByIDTx(tx *gorm.DB, id int64) (*model.Venda, error) {
	var v model.Venda
	err := tx.Preload("Itens").First(&v, "id_venda = ?", id).Error
	return &v, err
}

func (r *vendaRepo) FindItensTx(tx *gorm.DB, idVenda int64) ([]model.ItemVenda, error) {
	var itens []model.ItemVenda
	err := tx.Where("id_venda = ?", idVenda).Order("id_item ASC").Find(&itens).Error
	return itens, err
}

func (r *vendaRepo) FindItemTx(tx *gorm.DB, idVenda, idItem int64) (*model.ItemVenda, error) {
	var item model.ItemVenda
	err := tx.Where("id_item = ? AND id_venda = ?", idItem, idVenda).First(&item).Error
	return &item, err
}

func (r *vendaRepo) MarcarCanceladaTx(tx *gorm.DB, id int64, motivo string) (bool, error) {
	res := tx.Model(&model.Venda{}).
		Where("id_venda = ? AND status = ?", id, model.VendaConcluida).
		Updates(map[string]interface{}{
			"status":              model.VendaCancelada,
			"motivo_cancelamento": motivo,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *vendaRepo) MarcarDevolvidaTx(tx *gorm.DB, id int64, motivo string, quando time.Time) (bool, error) {
	res := tx.Model(&model.Venda{}).
		Where("id_venda = ? AND status = ?", id, model.VendaConcluida).
		Updates(map[string]interface{}{
			"status":           model.VendaDevolvida,
			"motivo_devolucao": motivo,
			"devolvido_em":     quando,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *vendaRepo) UpdateItemDescontoTx(tx *gorm.DB, item *model.ItemVenda) error {
	return tx.Model(&model.ItemVenda{}).
		Where("id_item = ? AND id_venda = ?", item.ID, item.IDVenda).
		Updates(map[string]interface{}{
			"desconto_valor":   item.DescontoValor,
			"desconto_percent": item.DescontoPercent,
			"motivo_desconto":  item.MotivoDesconto,
			"preco_unit":       item.PrecoUnit,
			"subtotal":         item.Subtotal,
		}).Error
}

func (r *vendaRepo) UpdateTotaisTx(tx *gorm.DB, idVenda int64, bruto, desconto, total decimal.Decimal) error {
	return tx.Model(&model.Venda{}).
		Where("id_venda = ?", idVenda).
		Updates(map[string]interface{}{
			"total_bruto":    bruto,
			"desconto_total": desconto,
			"total":          total,
		}).Error
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Venda{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Data != "" {
		q = q.Where("DATE(criado_em) = ?", filter.Data)
	} else {
		q = q.Where("DATE(criado_em) = CURRENT_DATE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var vendas []model.Venda
	err := q.Preload("Itens").Preload("Itens.Variacao").
		Order("criado_em DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vendas).Error
	return vendas, total, err
}
