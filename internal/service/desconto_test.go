package service_test

import (
	"errors"
	"testing"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	vendedora = service.Ator{ID: 2, Nome: "Vendedora Demo", Perfil: model.PerfilVendedora}
	gerente   = service.Ator{ID: 3, Nome: "Gerente Demo", Perfil: model.PerfilGerente}
)

func codigoDe(t *testing.T, err error) apierror.Codigo {
	t.Helper()
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr), "esperava *apierror.Error, veio %v", err)
	return apiErr.Codigo
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDescontoPolicyValidar(t *testing.T) {
	policy := service.NewDescontoPolicy(10)

	t.Run("percentual fora da faixa", func(t *testing.T) {
		err := policy.Validar(dec("-1"), "motivo qualquer", vendedora)
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoDescontoInvalido, err.Codigo)

		err = policy.Validar(dec("100.01"), "motivo qualquer", gerente)
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoDescontoInvalido, err.Codigo)
	})

	t.Run("zero dispensa motivo", func(t *testing.T) {
		assert.Nil(t, policy.Validar(decimal.Zero, "", vendedora))
	})

	t.Run("desconto sem motivo", func(t *testing.T) {
		err := policy.Validar(dec("5"), "", vendedora)
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoMotivoObrigatorio, err.Codigo)

		err = policy.Validar(dec("5"), "ab", vendedora)
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoMotivoObrigatorio, err.Codigo)
	})

	t.Run("acima do teto exige gerente", func(t *testing.T) {
		err := policy.Validar(dec("15"), "cliente fiel", vendedora)
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoProibido, err.Codigo)

		assert.Nil(t, policy.Validar(dec("15"), "cliente fiel", gerente))
	})

	t.Run("teto exato permitido para vendedora", func(t *testing.T) {
		assert.Nil(t, policy.Validar(dec("10"), "promocao da loja", vendedora))
	})
}

func TestDescontoPolicyCalcularPorPercent(t *testing.T) {
	policy := service.NewDescontoPolicy(10)

	t.Run("cinco por cento sobre bruto 200", func(t *testing.T) {
		linha, err := policy.CalcularPorPercent(dec("100.00"), 2, dec("5"))
		require.Nil(t, err)
		assert.True(t, linha.Bruto.Equal(dec("200.00")), "bruto %s", linha.Bruto)
		assert.True(t, linha.DescontoValor.Equal(dec("10.00")), "desconto %s", linha.DescontoValor)
		assert.True(t, linha.Subtotal.Equal(dec("190.00")), "subtotal %s", linha.Subtotal)
		assert.True(t, linha.PrecoUnit.Equal(dec("95.00")), "preco unit %s", linha.PrecoUnit)
	})

	t.Run("sem desconto preserva valores", func(t *testing.T) {
		linha, err := policy.CalcularPorPercent(dec("59.90"), 2, decimal.Zero)
		require.Nil(t, err)
		assert.True(t, linha.Bruto.Equal(dec("119.80")))
		assert.True(t, linha.DescontoValor.IsZero())
		assert.True(t, linha.Subtotal.Equal(dec("119.80")))
		assert.True(t, linha.PrecoUnit.Equal(dec("59.90")))
	})

	t.Run("arredonda meio para cima", func(t *testing.T) {
		// 3 × 33.33 = 99.99; 7.5% = 7.49925 → 7.50
		linha, err := policy.CalcularPorPercent(dec("33.33"), 3, dec("7.5"))
		require.Nil(t, err)
		assert.True(t, linha.DescontoValor.Equal(dec("7.50")), "desconto %s", linha.DescontoValor)
		assert.True(t, linha.Subtotal.Equal(dec("92.49")), "subtotal %s", linha.Subtotal)
	})

	t.Run("cem por cento zera a linha e é rejeitado", func(t *testing.T) {
		_, err := policy.CalcularPorPercent(dec("100.00"), 2, dec("100"))
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoDescontoInvalido, err.Codigo)
	})

	t.Run("valor arredondado que engole o bruto é rejeitado", func(t *testing.T) {
		// bruto 0.01; 99% = 0.0099 → arredonda para 0.01 = bruto
		_, err := policy.CalcularPorPercent(dec("0.01"), 1, dec("99"))
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoDescontoInvalido, err.Codigo)
	})
}

func TestDescontoPolicyCalcularPorValor(t *testing.T) {
	policy := service.NewDescontoPolicy(10)

	t.Run("deriva percentual do valor", func(t *testing.T) {
		linha, err := policy.CalcularPorValor(dec("100.00"), 2, dec("10.00"))
		require.Nil(t, err)
		assert.True(t, linha.DescontoPercent.Equal(dec("5.00")), "percent %s", linha.DescontoPercent)
		assert.True(t, linha.Subtotal.Equal(dec("190.00")))
	})

	t.Run("valor igual ou acima do bruto", func(t *testing.T) {
		_, err := policy.CalcularPorValor(dec("100.00"), 2, dec("200.00"))
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoDescontoInvalido, err.Codigo)

		_, err = policy.CalcularPorValor(dec("100.00"), 2, dec("250.00"))
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoDescontoInvalido, err.Codigo)
	})

	t.Run("valor negativo", func(t *testing.T) {
		_, err := policy.CalcularPorValor(dec("100.00"), 1, dec("-1"))
		require.NotNil(t, err)
		assert.Equal(t, apierror.CodigoDescontoInvalido, err.Codigo)
	})

	t.Run("zero remove o desconto", func(t *testing.T) {
		linha, err := policy.CalcularPorValor(dec("100.00"), 2, decimal.Zero)
		require.Nil(t, err)
		assert.True(t, linha.DescontoPercent.IsZero())
		assert.True(t, linha.Subtotal.Equal(dec("200.00")))
	})
}
