package service

import (
	"fmt"

	"github.com/janamirelly/varejosync-poc/internal/apierror"

	"github.com/shopspring/decimal"
)

var (
	cem          = decimal.NewFromInt(100)
	percentLimit = decimal.NewFromInt(100)
)

// round2 arredonda a 2 casas, meio para cima — a mesma regra em todo
// cálculo monetário do sistema.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// LinhaCalculada é o resultado do cálculo de desconto de uma linha.
type LinhaCalculada struct {
	Bruto           decimal.Decimal // quantidade × preço original
	DescontoPercent decimal.Decimal
	DescontoValor   decimal.Decimal
	PrecoUnit       decimal.Decimal // preço efetivo após desconto
	Subtotal        decimal.Decimal
}

// DescontoPolicy concentra as regras de desconto por linha: faixa válida,
// motivo obrigatório e teto por perfil. Pura — sem estado além do teto.
type DescontoPolicy struct {
	// TetoPercent é o maior percentual permitido sem perfil de gerente.
	TetoPercent decimal.Decimal
}

func NewDescontoPolicy(tetoPercent int) *DescontoPolicy {
	return &DescontoPolicy{TetoPercent: decimal.NewFromInt(int64(tetoPercent))}
}

// Validar aplica as regras de política a um percentual pedido. O motivo é
// exigido para qualquer desconto acima de zero; acima do teto, apenas o
// gerente autoriza.
func (p *DescontoPolicy) Validar(percent decimal.Decimal, motivo string, ator Ator) *apierror.Error {
	if percent.IsNegative() || percent.GreaterThan(percentLimit) {
		return apierror.New(apierror.CodigoDescontoInvalido,
			"desconto percentual deve estar entre 0 e 100")
	}
	if percent.IsZero() {
		return nil
	}
	if len(motivo) < 3 {
		return apierror.New(apierror.CodigoMotivoObrigatorio,
			"motivo é obrigatório para vendas com desconto")
	}
	if percent.GreaterThan(p.TetoPercent) && !ator.EhGerente() {
		return apierror.Proibido(
			fmt.Sprintf("desconto acima de %s%% requer perfil %q", p.TetoPercent, "Gerente de Operações")).
			WithDetalhe("desconto_percent", percent).
			WithDetalhe("teto_percent", p.TetoPercent)
	}
	return nil
}

// CalcularPorPercent deriva os valores da linha a partir de um percentual
// já validado. O desconto incide sobre o bruto da linha e o preço efetivo
// é recomposto a partir do subtotal, ambos arredondados a 2 casas. O valor
// resultante precisa ser menor que o bruto: um desconto que zera ou
// inverte o subtotal é rejeitado.
func (p *DescontoPolicy) CalcularPorPercent(preco decimal.Decimal, quantidade int, percent decimal.Decimal) (LinhaCalculada, *apierror.Error) {
	qtd := decimal.NewFromInt(int64(quantidade))
	bruto := round2(preco.Mul(qtd))
	valor := round2(bruto.Mul(percent).Div(cem))
	if !valor.IsZero() && valor.GreaterThanOrEqual(bruto) {
		return LinhaCalculada{}, apierror.New(apierror.CodigoDescontoInvalido,
			"desconto não pode zerar o subtotal da linha").
			WithDetalhe("bruto", bruto).
			WithDetalhe("desconto_valor", valor)
	}
	subtotal := bruto.Sub(valor)
	precoUnit := round2(subtotal.Div(qtd))
	return LinhaCalculada{
		Bruto:           bruto,
		DescontoPercent: percent,
		DescontoValor:   valor,
		PrecoUnit:       precoUnit,
		Subtotal:        subtotal,
	}, nil
}

// CalcularPorValor deriva a linha a partir de um valor absoluto de
// desconto. O valor precisa caber na linha: igual ou acima do bruto é
// rejeitado, zero é permitido (remove o desconto).
func (p *DescontoPolicy) CalcularPorValor(preco decimal.Decimal, quantidade int, valor decimal.Decimal) (LinhaCalculada, *apierror.Error) {
	qtd := decimal.NewFromInt(int64(quantidade))
	bruto := round2(preco.Mul(qtd))
	valor = round2(valor)
	if valor.IsNegative() || valor.GreaterThanOrEqual(bruto) {
		return LinhaCalculada{}, apierror.New(apierror.CodigoDescontoInvalido,
			"desconto em valor deve ser menor que o bruto da linha").
			WithDetalhe("bruto", bruto).
			WithDetalhe("desconto_valor", valor)
	}
	percent := decimal.Zero
	if !valor.IsZero() {
		percent = round2(valor.Mul(cem).Div(bruto))
	}
	subtotal := bruto.Sub(valor)
	precoUnit := round2(subtotal.Div(qtd))
	return LinhaCalculada{
		Bruto:           bruto,
		DescontoPercent: percent,
		DescontoValor:   valor,
		PrecoUnit:       precoUnit,
		Subtotal:        subtotal,
	}, nil
}
