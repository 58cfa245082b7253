package service_test

import (
	"context"
	"testing"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/repository"
	"github.com/janamirelly/varejosync-poc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fiscalFixture struct {
	*vendaFixture
	fiscal service.FiscalService
}

func newFiscalFixture() *fiscalFixture {
	f := newVendaFixture()
	return &fiscalFixture{
		vendaFixture: f,
		fiscal:       service.NewFiscalService(repository.NewTxRunner(nil), f.vendas, f.fiscais),
	}
}

func (f *fiscalFixture) registrarVenda(t *testing.T) *dto.VendaResponse {
	t.Helper()
	resp, err := f.svc.RegistrarVenda(context.Background(), vendedora, dto.RegistrarVendaRequest{
		FormaPagamento: "PIX",
		Itens:          []dto.ItemVendaRequest{itemReq(1, 1, "59.90")},
	})
	require.NoError(t, err)
	return resp
}

func TestFiscalEmitir(t *testing.T) {
	ctx := context.Background()

	t.Run("numeracao sequencial e chave de acesso", func(t *testing.T) {
		f := newFiscalFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 10)

		v1 := f.registrarVenda(t)
		v2 := f.registrarVenda(t)

		doc1, err := f.fiscal.Emitir(ctx, gerente, v1.IDVenda)
		require.NoError(t, err)
		assert.Equal(t, int64(1), doc1.Numero)
		assert.Equal(t, "1", doc1.Serie)
		assert.Equal(t, model.FiscalEmitida, doc1.Status)
		assert.Equal(t, "DF-1-1", doc1.ChaveAcesso)
		assert.True(t, doc1.ValorTotal.Equal(v1.Total), "valor %s", doc1.ValorTotal)

		doc2, err := f.fiscal.Emitir(ctx, gerente, v2.IDVenda)
		require.NoError(t, err)
		assert.Equal(t, int64(2), doc2.Numero)
		assert.Equal(t, "DF-2-2", doc2.ChaveAcesso)
	})

	t.Run("emissao duplicada conflita", func(t *testing.T) {
		f := newFiscalFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 10)
		v := f.registrarVenda(t)

		_, err := f.fiscal.Emitir(ctx, gerente, v.IDVenda)
		require.NoError(t, err)
		_, err = f.fiscal.Emitir(ctx, gerente, v.IDVenda)
		assert.Equal(t, apierror.CodigoConflito, codigoDe(t, err))
	})

	t.Run("venda cancelada nao emite", func(t *testing.T) {
		f := newFiscalFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 10)
		v := f.registrarVenda(t)
		_, err := f.svc.CancelarVenda(ctx, gerente, v.IDVenda, "cliente desistiu")
		require.NoError(t, err)

		_, err = f.fiscal.Emitir(ctx, gerente, v.IDVenda)
		assert.Equal(t, apierror.CodigoConflito, codigoDe(t, err))
	})

	t.Run("venda inexistente", func(t *testing.T) {
		f := newFiscalFixture()
		_, err := f.fiscal.Emitir(ctx, gerente, 999)
		assert.Equal(t, apierror.CodigoNaoEncontrado, codigoDe(t, err))
	})
}

func TestFiscalCancelar(t *testing.T) {
	ctx := context.Background()

	t.Run("cancela documento emitido", func(t *testing.T) {
		f := newFiscalFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 10)
		v := f.registrarVenda(t)
		_, err := f.fiscal.Emitir(ctx, gerente, v.IDVenda)
		require.NoError(t, err)

		doc, err := f.fiscal.Cancelar(ctx, gerente, v.IDVenda, "erro de emissão")
		require.NoError(t, err)
		assert.Equal(t, model.FiscalCancelada, doc.Status)

		// Cancelado, a venda deixa de estar bloqueada para compensação.
		bloqueada, err := f.svc.BloqueadaPorFiscal(ctx, v.IDVenda)
		require.NoError(t, err)
		assert.False(t, bloqueada)
	})

	t.Run("cancelamento duplo conflita", func(t *testing.T) {
		f := newFiscalFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 10)
		v := f.registrarVenda(t)
		_, err := f.fiscal.Emitir(ctx, gerente, v.IDVenda)
		require.NoError(t, err)

		_, err = f.fiscal.Cancelar(ctx, gerente, v.IDVenda, "erro de emissão")
		require.NoError(t, err)
		_, err = f.fiscal.Cancelar(ctx, gerente, v.IDVenda, "de novo")
		assert.Equal(t, apierror.CodigoConflito, codigoDe(t, err))
	})

	t.Run("motivo obrigatorio", func(t *testing.T) {
		f := newFiscalFixture()
		_, err := f.fiscal.Cancelar(ctx, gerente, 1, "ab")
		assert.Equal(t, apierror.CodigoMotivoObrigatorio, codigoDe(t, err))
	})

	t.Run("documento inexistente", func(t *testing.T) {
		f := newFiscalFixture()
		_, err := f.fiscal.Cancelar(ctx, gerente, 999, "erro de emissão")
		assert.Equal(t, apierror.CodigoNaoEncontrado, codigoDe(t, err))
	})
}

func TestFiscalObterPorVenda(t *testing.T) {
	ctx := context.Background()
	f := newFiscalFixture()
	f.variacoes.comVariacao(1, "59.90", true)
	f.estoque.comSaldo(1, 10)
	v := f.registrarVenda(t)

	_, err := f.fiscal.ObterPorVenda(ctx, v.IDVenda)
	assert.Equal(t, apierror.CodigoNaoEncontrado, codigoDe(t, err))

	emitido, err := f.fiscal.Emitir(ctx, gerente, v.IDVenda)
	require.NoError(t, err)

	doc, err := f.fiscal.ObterPorVenda(ctx, v.IDVenda)
	require.NoError(t, err)
	assert.Equal(t, emitido.IDDocumento, doc.IDDocumento)
	assert.Equal(t, emitido.ChaveAcesso, doc.ChaveAcesso)
}
