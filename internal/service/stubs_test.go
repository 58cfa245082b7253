package service_test

import (
	"context"
	"time"

	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// Repositórios em memória no lugar do banco; os serviços rodam com TxRunner
// sem DB (callback recebe tx nil e os stubs o ignoram).

type stubEstoqueRepo struct {
	linhas map[int64]*model.Estoque
	seq    int64
	// falharDebito força o débito condicional a reportar zero linhas para
	// a variação, simulando uma corrida perdida após a pré-checagem.
	falharDebito map[int64]bool
}

func newStubEstoqueRepo() *stubEstoqueRepo {
	return &stubEstoqueRepo{
		linhas:       make(map[int64]*model.Estoque),
		falharDebito: make(map[int64]bool),
	}
}

func (r *stubEstoqueRepo) comSaldo(idVariacao int64, qtd int) *stubEstoqueRepo {
	r.seq++
	r.linhas[idVariacao] = &model.Estoque{
		ID: r.seq, IDVariacao: idVariacao, Quantidade: qtd, EstoqueMin: 10,
		AtualizadoEm: time.Now().UTC(),
	}
	return r
}

func (r *stubEstoqueRepo) GarantirTx(_ *gorm.DB, idVariacao int64) error {
	if _, ok := r.linhas[idVariacao]; !ok {
		r.seq++
		r.linhas[idVariacao] = &model.Estoque{
			ID: r.seq, IDVariacao: idVariacao, Quantidade: 0, EstoqueMin: 10,
			AtualizadoEm: time.Now().UTC(),
		}
	}
	return nil
}

func (r *stubEstoqueRepo) CreditarTx(_ *gorm.DB, idVariacao int64, qtd int) error {
	r.linhas[idVariacao].Quantidade += qtd
	return nil
}

func (r *stubEstoqueRepo) DebitarTx(_ *gorm.DB, idVariacao int64, qtd int) (bool, error) {
	if r.falharDebito[idVariacao] {
		return false, nil
	}
	linha := r.linhas[idVariacao]
	if linha.Quantidade < qtd {
		return false, nil
	}
	linha.Quantidade -= qtd
	return true, nil
}

func (r *stubEstoqueRepo) ObterTx(_ *gorm.DB, idVariacao int64) (*model.Estoque, error) {
	linha, ok := r.linhas[idVariacao]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *linha
	return &copia, nil
}

func (r *stubEstoqueRepo) Consultar(_ context.Context, idVariacao int64) (*model.Estoque, error) {
	if err := r.GarantirTx(nil, idVariacao); err != nil {
		return nil, err
	}
	return r.ObterTx(nil, idVariacao)
}

func (r *stubEstoqueRepo) AtualizarMinimo(_ context.Context, idVariacao int64, estoqueMin int) error {
	linha, ok := r.linhas[idVariacao]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	linha.EstoqueMin = estoqueMin
	return nil
}

func (r *stubEstoqueRepo) ListarDetalhado(_ context.Context) ([]model.Estoque, error) {
	out := make([]model.Estoque, 0, len(r.linhas))
	for _, l := range r.linhas {
		out = append(out, *l)
	}
	return out, nil
}

var _ repository.EstoqueRepository = (*stubEstoqueRepo)(nil)

type stubMovimentacaoRepo struct {
	movs []model.MovimentacaoEstoque
	seq  int64
}

func newStubMovimentacaoRepo() *stubMovimentacaoRepo { return &stubMovimentacaoRepo{} }

func (r *stubMovimentacaoRepo) CreateTx(_ *gorm.DB, m *model.MovimentacaoEstoque) error {
	r.seq++
	m.ID = r.seq
	m.CriadoEm = time.Now().UTC()
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimentacaoRepo) List(_ context.Context, filter dto.MovimentacaoFilter) ([]model.MovimentacaoEstoque, int64, error) {
	out := make([]model.MovimentacaoEstoque, 0, len(r.movs))
	for _, m := range r.movs {
		if filter.IDVariacao > 0 && m.IDVariacao != filter.IDVariacao {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		if filter.Origem != "" && m.Origem != filter.Origem {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovimentacaoRepo) ListByVenda(_ context.Context, idVenda int64) ([]model.MovimentacaoEstoque, error) {
	var out []model.MovimentacaoEstoque
	for _, m := range r.movs {
		if m.IDVendaOrigem != nil && *m.IDVendaOrigem == idVenda {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.MovimentacaoRepository = (*stubMovimentacaoRepo)(nil)

type stubVendaRepo struct {
	vendas  map[int64]*model.Venda
	seq     int64
	itemSeq int64
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[int64]*model.Venda)}
}

func (r *stubVendaRepo) CreateTx(_ *gorm.DB, v *model.Venda) error {
	r.seq++
	v.ID = r.seq
	v.CriadoEm = time.Now().UTC()
	for i := range v.Itens {
		r.itemSeq++
		v.Itens[i].ID = r.itemSeq
		v.Itens[i].IDVenda = v.ID
	}
	copia := *v
	copia.Itens = append([]model.ItemVenda(nil), v.Itens...)
	r.vendas[v.ID] = &copia
	return nil
}

func (r *stubVendaRepo) find(id int64) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *v
	copia.Itens = append([]model.ItemVenda(nil), v.Itens...)
	return &copia, nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id int64) (*model.Venda, error) {
	return r.find(id)
}

func (r *stubVendaRepo) FindByIDTx(_ *gorm.DB, id int64) (*model.Venda, error) {
	return r.find(id)
}

func (r *stubVendaRepo) FindItensTx(_ *gorm.DB, idVenda int64) ([]model.ItemVenda, error) {
	v, ok := r.vendas[idVenda]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return append([]model.ItemVenda(nil), v.Itens...), nil
}

func (r *stubVendaRepo) FindItemTx(_ *gorm.DB, idVenda, idItem int64) (*model.ItemVenda, error) {
	v, ok := r.vendas[idVenda]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range v.Itens {
		if v.Itens[i].ID == idItem {
			copia := v.Itens[i]
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVendaRepo) MarcarCanceladaTx(_ *gorm.DB, id int64, motivo string) (bool, error) {
	v, ok := r.vendas[id]
	if !ok || v.Status != model.VendaConcluida {
		return false, nil
	}
	v.Status = model.VendaCancelada
	v.MotivoCancelamento = &motivo
	return true, nil
}

func (r *stubVendaRepo) MarcarDevolvidaTx(_ *gorm.DB, id int64, motivo string, quando time.Time) (bool, error) {
	v, ok := r.vendas[id]
	if !ok || v.Status != model.VendaConcluida {
		return false, nil
	}
	v.Status = model.VendaDevolvida
	v.MotivoDevolucao = &motivo
	v.DevolvidoEm = &quando
	return true, nil
}

func (r *stubVendaRepo) UpdateItemDescontoTx(_ *gorm.DB, item *model.ItemVenda) error {
	v, ok := r.vendas[item.IDVenda]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range v.Itens {
		if v.Itens[i].ID == item.ID {
			v.Itens[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubVendaRepo) UpdateTotaisTx(_ *gorm.DB, idVenda int64, bruto, desconto, total decimal.Decimal) error {
	v, ok := r.vendas[idVenda]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.TotalBruto = bruto
	v.DescontoTotal = desconto
	v.Total = total
	return nil
}

func (r *stubVendaRepo) List(_ context.Context, _ dto.VendaFilter) ([]model.Venda, int64, error) {
	out := make([]model.Venda, 0, len(r.vendas))
	for _, v := range r.vendas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

type stubVariacaoRepo struct {
	variacoes map[int64]model.VariacaoProduto
	estoque   *stubEstoqueRepo
}

func newStubVariacaoRepo(estoque *stubEstoqueRepo) *stubVariacaoRepo {
	return &stubVariacaoRepo{variacoes: make(map[int64]model.VariacaoProduto), estoque: estoque}
}

func (r *stubVariacaoRepo) comVariacao(id int64, preco string, ativo bool) *stubVariacaoRepo {
	r.variacoes[id] = model.VariacaoProduto{
		ID: id, IDProduto: 1, Cor: "Preto", Tamanho: "M",
		SKU: "SKU-" + preco, Preco: decimal.RequireFromString(preco), Ativo: ativo,
	}
	return r
}

func (r *stubVariacaoRepo) Create(_ context.Context, v *model.VariacaoProduto) error {
	v.ID = int64(len(r.variacoes) + 1)
	r.variacoes[v.ID] = *v
	return nil
}

func (r *stubVariacaoRepo) CreateLote(_ context.Context, vs []model.VariacaoProduto) (int, error) {
	inseridas := 0
	for _, v := range vs {
		existe := false
		for _, atual := range r.variacoes {
			if atual.SKU == v.SKU {
				existe = true
				break
			}
		}
		if existe {
			continue
		}
		v.ID = int64(len(r.variacoes) + 1)
		r.variacoes[v.ID] = v
		inseridas++
	}
	return inseridas, nil
}

func (r *stubVariacaoRepo) FindByID(_ context.Context, id int64) (*model.VariacaoProduto, error) {
	v, ok := r.variacoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r *stubVariacaoRepo) ListByProduto(_ context.Context, idProduto int64) ([]model.VariacaoProduto, error) {
	var out []model.VariacaoProduto
	for _, v := range r.variacoes {
		if v.IDProduto == idProduto {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVariacaoRepo) SetAtivo(_ context.Context, id int64, ativo bool) error {
	v, ok := r.variacoes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Ativo = ativo
	r.variacoes[id] = v
	return nil
}

func (r *stubVariacaoRepo) BuscarComEstoqueTx(_ *gorm.DB, ids []int64) (map[int64]repository.VariacaoEstoque, error) {
	out := make(map[int64]repository.VariacaoEstoque)
	for _, id := range ids {
		v, ok := r.variacoes[id]
		if !ok {
			continue
		}
		saldo := 0
		if linha, ok := r.estoque.linhas[id]; ok {
			saldo = linha.Quantidade
		}
		out[id] = repository.VariacaoEstoque{
			IDVariacao: id, Preco: v.Preco, Ativo: v.Ativo, EstoqueAtual: saldo,
		}
	}
	return out, nil
}

var _ repository.VariacaoRepository = (*stubVariacaoRepo)(nil)

type stubFiscalRepo struct {
	docs map[int64]*model.DocumentoFiscal
	seq  int64
}

func newStubFiscalRepo() *stubFiscalRepo {
	return &stubFiscalRepo{docs: make(map[int64]*model.DocumentoFiscal)}
}

func (r *stubFiscalRepo) FindByVenda(_ context.Context, idVenda int64) (*model.DocumentoFiscal, error) {
	return r.FindByVendaTx(nil, idVenda)
}

func (r *stubFiscalRepo) FindByVendaTx(_ *gorm.DB, idVenda int64) (*model.DocumentoFiscal, error) {
	doc, ok := r.docs[idVenda]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *doc
	return &copia, nil
}

func (r *stubFiscalRepo) ProximoNumeroTx(_ *gorm.DB) (int64, error) {
	var max int64
	for _, doc := range r.docs {
		if doc.Numero > max {
			max = doc.Numero
		}
	}
	return max + 1, nil
}

func (r *stubFiscalRepo) CreateTx(_ *gorm.DB, doc *model.DocumentoFiscal) error {
	r.seq++
	doc.ID = r.seq
	doc.CriadoEm = time.Now().UTC()
	copia := *doc
	r.docs[doc.IDVenda] = &copia
	return nil
}

func (r *stubFiscalRepo) CancelarTx(_ *gorm.DB, idVenda int64, motivo string) (bool, error) {
	doc, ok := r.docs[idVenda]
	if !ok || doc.Status != model.FiscalEmitida {
		return false, nil
	}
	agora := time.Now().UTC()
	doc.Status = model.FiscalCancelada
	doc.MotivoCancelamento = &motivo
	doc.CanceladoEm = &agora
	return true, nil
}

var _ repository.DocumentoFiscalRepository = (*stubFiscalRepo)(nil)
