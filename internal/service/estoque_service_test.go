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

type estoqueFixture struct {
	estoque   *stubEstoqueRepo
	movs      *stubMovimentacaoRepo
	variacoes *stubVariacaoRepo
	svc       service.EstoqueService
}

func newEstoqueFixture() *estoqueFixture {
	estoque := newStubEstoqueRepo()
	f := &estoqueFixture{
		estoque:   estoque,
		movs:      newStubMovimentacaoRepo(),
		variacoes: newStubVariacaoRepo(estoque),
	}
	f.svc = service.NewEstoqueService(repository.NewTxRunner(nil), f.estoque, f.movs, f.variacoes)
	return f
}

func TestEstoqueConsultar(t *testing.T) {
	ctx := context.Background()

	t.Run("cria a linha zerada na primeira consulta", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", true)

		resp, err := f.svc.Consultar(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Quantidade)

		// Consulta repetida não recria nem zera a linha.
		f.estoque.linhas[1].Quantidade = 5
		resp, err = f.svc.Consultar(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Quantidade)
	})

	t.Run("variacao inexistente", func(t *testing.T) {
		f := newEstoqueFixture()
		_, err := f.svc.Consultar(ctx, 99)
		assert.Equal(t, apierror.CodigoNaoEncontrado, codigoDe(t, err))
	})
}

func TestEstoqueRegistrarMovimentacao(t *testing.T) {
	ctx := context.Background()

	t.Run("entrada credita e reporta saldo anterior", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 3)

		resp, err := f.svc.RegistrarMovimentacao(ctx, gerente, dto.RegistrarMovimentacaoRequest{
			IDVariacao: 1, Tipo: model.MovEntrada, Quantidade: 7, Observacao: "reposição fornecedor",
		})
		require.NoError(t, err)

		assert.Equal(t, 3, resp.EstoqueAnterior)
		assert.Equal(t, 10, resp.EstoqueAtual)
		assert.Equal(t, model.OrigemManual, resp.Origem)
		assert.Nil(t, resp.IDVendaOrigem)
		assert.Equal(t, gerente.ID, resp.IDUsuario)
		assert.Equal(t, 10, f.estoque.linhas[1].Quantidade)
	})

	t.Run("ajuste tambem credita", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 3)

		resp, err := f.svc.RegistrarMovimentacao(ctx, gerente, dto.RegistrarMovimentacaoRequest{
			IDVariacao: 1, Tipo: model.MovAjuste, Quantidade: 2, Observacao: "acerto de inventário",
		})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.EstoqueAtual)
	})

	t.Run("saida sem saldo suficiente", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 2)

		_, err := f.svc.RegistrarMovimentacao(ctx, gerente, dto.RegistrarMovimentacaoRequest{
			IDVariacao: 1, Tipo: model.MovSaida, Quantidade: 3, Observacao: "perda",
		})
		assert.Equal(t, apierror.CodigoEstoqueInsuficiente, codigoDe(t, err))
		assert.Equal(t, 2, f.estoque.linhas[1].Quantidade)
		assert.Empty(t, f.movs.movs)
	})

	t.Run("saida com saldo debita", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 5)

		resp, err := f.svc.RegistrarMovimentacao(ctx, gerente, dto.RegistrarMovimentacaoRequest{
			IDVariacao: 1, Tipo: model.MovSaida, Quantidade: 3, Observacao: "perda",
		})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.EstoqueAnterior)
		assert.Equal(t, 2, resp.EstoqueAtual)
	})

	t.Run("variacao inativa nao movimenta", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", false)
		f.estoque.comSaldo(1, 3)

		_, err := f.svc.RegistrarMovimentacao(ctx, gerente, dto.RegistrarMovimentacaoRequest{
			IDVariacao: 1, Tipo: model.MovEntrada, Quantidade: 7, Observacao: "reposição fornecedor",
		})
		assert.Equal(t, apierror.CodigoVariacaoInativa, codigoDe(t, err))
		assert.Equal(t, 3, f.estoque.linhas[1].Quantidade)
		assert.Empty(t, f.movs.movs)
	})

	t.Run("tipo invalido", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", true)

		_, err := f.svc.RegistrarMovimentacao(ctx, gerente, dto.RegistrarMovimentacaoRequest{
			IDVariacao: 1, Tipo: "TRANSFERENCIA", Quantidade: 1,
		})
		assert.Equal(t, apierror.CodigoValidacao, codigoDe(t, err))
	})

	t.Run("primeira entrada de variacao sem linha de estoque", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", true)

		resp, err := f.svc.RegistrarMovimentacao(ctx, gerente, dto.RegistrarMovimentacaoRequest{
			IDVariacao: 1, Tipo: model.MovEntrada, Quantidade: 10, Observacao: "carga inicial",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.EstoqueAnterior)
		assert.Equal(t, 10, resp.EstoqueAtual)
	})
}

func TestEstoqueAtualizarMinimo(t *testing.T) {
	ctx := context.Background()

	t.Run("atualiza e devolve a linha", func(t *testing.T) {
		f := newEstoqueFixture()
		f.variacoes.comVariacao(1, "59.90", true)
		f.estoque.comSaldo(1, 5)

		resp, err := f.svc.AtualizarMinimo(ctx, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.EstoqueMin)
	})

	t.Run("minimo negativo", func(t *testing.T) {
		f := newEstoqueFixture()
		_, err := f.svc.AtualizarMinimo(ctx, 1, -1)
		assert.Equal(t, apierror.CodigoValidacao, codigoDe(t, err))
	})
}

func TestEstoqueListarDetalhado(t *testing.T) {
	f := newEstoqueFixture()
	f.variacoes.comVariacao(1, "59.90", true)
	f.estoque.comSaldo(1, 5) // mínimo padrão do stub é 10

	itens, err := f.svc.ListarDetalhado(context.Background())
	require.NoError(t, err)
	require.Len(t, itens, 1)
	assert.True(t, itens[0].Abaixo, "5 abaixo do mínimo 10 deveria alertar")

	_, err = f.svc.AtualizarMinimo(context.Background(), 1, 2)
	require.NoError(t, err)
	itens, err = f.svc.ListarDetalhado(context.Background())
	require.NoError(t, err)
	assert.False(t, itens[0].Abaixo)
}
