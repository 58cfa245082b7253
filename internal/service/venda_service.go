package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendaService concentra o ciclo de vida de uma venda: registro atômico,
// compensações (cancelamento e devolução) e o ajuste pós-venda de
// desconto por item.
type VendaService interface {
	RegistrarVenda(ctx context.Context, ator Ator, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	CancelarVenda(ctx context.Context, ator Ator, idVenda int64, motivo string) (*dto.VendaResponse, error)
	DevolverVenda(ctx context.Context, ator Ator, idVenda int64, motivo string) (*dto.VendaResponse, error)
	AplicarDescontoItem(ctx context.Context, ator Ator, idVenda, idItem int64, req dto.DescontoItemRequest) (*dto.TotaisVendaResponse, error)
	ObterVenda(ctx context.Context, id int64) (*dto.VendaResponse, error)
	ListarVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
	// ListarMovimentacoesVenda devolve o rastro de estoque da venda:
	// a saída original e, se houver, os estornos de compensação.
	ListarMovimentacoesVenda(ctx context.Context, idVenda int64) ([]dto.MovimentacaoResponse, error)
	// BloqueadaPorFiscal responde se a venda tem documento fiscal EMITIDA.
	BloqueadaPorFiscal(ctx context.Context, idVenda int64) (bool, error)
}

type vendaService struct {
	txr       *repository.TxRunner
	vendas    repository.VendaRepository
	variacoes repository.VariacaoRepository
	estoque   repository.EstoqueRepository
	movs      repository.MovimentacaoRepository
	fiscais   repository.DocumentoFiscalRepository
	policy    *DescontoPolicy

	prazoDevolucao time.Duration
}

func NewVendaService(
	txr *repository.TxRunner,
	vendas repository.VendaRepository,
	variacoes repository.VariacaoRepository,
	estoque repository.EstoqueRepository,
	movs repository.MovimentacaoRepository,
	fiscais repository.DocumentoFiscalRepository,
	policy *DescontoPolicy,
	prazoDevolucaoDias int,
) VendaService {
	return &vendaService{
		txr:            txr,
		vendas:         vendas,
		variacoes:      variacoes,
		estoque:        estoque,
		movs:           movs,
		fiscais:        fiscais,
		policy:         policy,
		prazoDevolucao: time.Duration(prazoDevolucaoDias) * 24 * time.Hour,
	}
}

// precoTolerancia é a divergência máxima aceita entre o preço enviado pelo
// cliente e o preço de catálogo.
var precoTolerancia = decimal.NewFromFloat(0.01)

func (s *vendaService) RegistrarVenda(ctx context.Context, ator Ator, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	if !formaPagamentoValida(req.FormaPagamento) {
		return nil, apierror.Validacao("forma de pagamento inválida").
			WithDetalhe("forma_pagamento", req.FormaPagamento)
	}

	// A política de desconto roda antes de abrir a transação: erro de
	// autorização não deve nem tocar o banco.
	for i, item := range req.Itens {
		motivo := ""
		if item.MotivoDesconto != nil {
			motivo = *item.MotivoDesconto
		}
		if err := s.policy.Validar(item.DescontoPercent, motivo, ator); err != nil {
			return nil, err.WithDetalhe("item", i)
		}
	}

	var venda *model.Venda
	err := s.txr.Run(ctx, func(tx *gorm.DB) error {
		ids := make([]int64, 0, len(req.Itens))
		for _, item := range req.Itens {
			ids = append(ids, item.IDVariacao)
		}
		for _, id := range ids {
			if err := s.estoque.GarantirTx(tx, id); err != nil {
				return err
			}
		}

		catalogo, err := s.variacoes.BuscarComEstoqueTx(tx, ids)
		if err != nil {
			return err
		}

		// Valida cada linha contra catálogo e saldo antes de gravar
		// qualquer coisa.
		itens := make([]model.ItemVenda, 0, len(req.Itens))
		totalBruto := decimal.Zero
		descontoTotal := decimal.Zero
		for _, item := range req.Itens {
			ve, ok := catalogo[item.IDVariacao]
			if !ok {
				return apierror.New(apierror.CodigoVariacaoDesconhecida, "variação não encontrada").
					WithDetalhe("id_variacao", item.IDVariacao)
			}
			if !ve.Ativo {
				return apierror.New(apierror.CodigoVariacaoInativa, "variação inativa").
					WithDetalhe("id_variacao", item.IDVariacao)
			}
			if item.PrecoUnit.Sub(ve.Preco).Abs().GreaterThan(precoTolerancia) {
				return apierror.New(apierror.CodigoPrecoDivergente, "preço divergente do catálogo").
					WithDetalhe("id_variacao", item.IDVariacao).
					WithDetalhe("preco_enviado", item.PrecoUnit).
					WithDetalhe("preco_catalogo", ve.Preco)
			}
			if item.Quantidade > ve.EstoqueAtual {
				return apierror.New(apierror.CodigoEstoqueInsuficiente, "estoque insuficiente").
					WithDetalhe("id_variacao", item.IDVariacao).
					WithDetalhe("estoque_atual", ve.EstoqueAtual).
					WithDetalhe("solicitado", item.Quantidade)
			}

			linha, lerr := s.policy.CalcularPorPercent(ve.Preco, item.Quantidade, item.DescontoPercent)
			if lerr != nil {
				return lerr.WithDetalhe("id_variacao", item.IDVariacao)
			}
			itens = append(itens, model.ItemVenda{
				IDVariacao:        item.IDVariacao,
				Quantidade:        item.Quantidade,
				PrecoUnitOriginal: ve.Preco,
				DescontoPercent:   linha.DescontoPercent,
				DescontoValor:     linha.DescontoValor,
				MotivoDesconto:    item.MotivoDesconto,
				PrecoUnit:         linha.PrecoUnit,
				Subtotal:          linha.Subtotal,
			})
			totalBruto = totalBruto.Add(linha.Bruto)
			descontoTotal = descontoTotal.Add(linha.DescontoValor)
		}

		venda = &model.Venda{
			IDUsuario:      ator.ID,
			Status:         model.VendaConcluida,
			FormaPagamento: req.FormaPagamento,
			TotalBruto:     totalBruto,
			DescontoTotal:  descontoTotal,
			Total:          totalBruto.Sub(descontoTotal),
			Itens:          itens,
		}
		if err := s.vendas.CreateTx(tx, venda); err != nil {
			return err
		}

		// Movimentos e débitos na ordem de entrada das linhas. Um débito
		// com zero linhas afetadas é uma corrida perdida: a pré-checagem
		// passou mas outra transação consumiu o saldo antes.
		for _, item := range venda.Itens {
			idVenda := venda.ID
			if err := s.movs.CreateTx(tx, &model.MovimentacaoEstoque{
				IDVariacao:    item.IDVariacao,
				Tipo:          model.MovSaida,
				Quantidade:    item.Quantidade,
				Observacao:    fmt.Sprintf("Venda #%d", idVenda),
				Origem:        model.OrigemVenda,
				IDVendaOrigem: &idVenda,
				IDUsuario:     ator.ID,
			}); err != nil {
				return err
			}
			ok, err := s.estoque.DebitarTx(tx, item.IDVariacao, item.Quantidade)
			if err != nil {
				return err
			}
			if !ok {
				return apierror.New(apierror.CodigoEstoqueInsuficiente, "estoque insuficiente").
					WithDetalhe("id_variacao", item.IDVariacao).
					WithDetalhe("solicitado", item.Quantidade).
					WithDetalhe("concorrencia", true)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toVendaResponse(venda), nil
}

func (s *vendaService) CancelarVenda(ctx context.Context, ator Ator, idVenda int64, motivo string) (*dto.VendaResponse, error) {
	if motivo == "" {
		return nil, apierror.New(apierror.CodigoMotivoObrigatorio, "motivo do cancelamento é obrigatório")
	}

	err := s.txr.Run(ctx, func(tx *gorm.DB) error {
		venda, err := s.vendas.FindByIDTx(tx, idVenda)
		if err != nil {
			return traduzNaoEncontrado(err, "venda não encontrada")
		}
		if venda.Status != model.VendaConcluida {
			return apierror.Conflito("apenas vendas concluídas podem ser canceladas").
				WithDetalhe("status", venda.Status)
		}
		if !mesmaDataUTC(venda.CriadoEm, time.Now()) {
			return apierror.New(apierror.CodigoPrazoExpirado,
				"cancelamento permitido apenas no dia da venda; use devolução")
		}

		ok, err := s.vendas.MarcarCanceladaTx(tx, idVenda, motivo)
		if err != nil {
			return err
		}
		if !ok {
			return apierror.Conflito("venda alterada por outra operação; tente novamente")
		}

		return s.estornarItens(tx, ator, venda,
			model.OrigemEstorno, fmt.Sprintf("Estorno Venda #%d | Motivo: %s", idVenda, motivo))
	})
	if err != nil {
		return nil, err
	}
	return s.ObterVenda(ctx, idVenda)
}

func (s *vendaService) DevolverVenda(ctx context.Context, ator Ator, idVenda int64, motivo string) (*dto.VendaResponse, error) {
	if motivo == "" {
		return nil, apierror.New(apierror.CodigoMotivoObrigatorio, "motivo da devolução é obrigatório")
	}

	err := s.txr.Run(ctx, func(tx *gorm.DB) error {
		venda, err := s.vendas.FindByIDTx(tx, idVenda)
		if err != nil {
			return traduzNaoEncontrado(err, "venda não encontrada")
		}
		if venda.Status != model.VendaConcluida {
			return apierror.Conflito("apenas vendas concluídas podem ser devolvidas").
				WithDetalhe("status", venda.Status)
		}
		agora := time.Now().UTC()
		if agora.Sub(venda.CriadoEm.UTC()) > s.prazoDevolucao {
			return apierror.New(apierror.CodigoPrazoExpirado, "prazo de devolução expirado").
				WithDetalhe("prazo_dias", int(s.prazoDevolucao.Hours()/24))
		}

		doc, err := s.fiscais.FindByVendaTx(tx, idVenda)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && doc.Status == model.FiscalEmitida {
			return apierror.New(apierror.CodigoBloqueioFiscal,
				"venda com documento fiscal emitido; cancele o documento antes")
		}

		ok, err := s.vendas.MarcarDevolvidaTx(tx, idVenda, motivo, agora)
		if err != nil {
			return err
		}
		if !ok {
			return apierror.Conflito("venda alterada por outra operação; tente novamente")
		}

		return s.estornarItens(tx, ator, venda,
			model.OrigemDevolucao, fmt.Sprintf("Devolução Venda #%d | Motivo: %s", idVenda, motivo))
	})
	if err != nil {
		return nil, err
	}
	return s.ObterVenda(ctx, idVenda)
}

// estornarItens credita o estoque de cada linha e registra o movimento de
// ENTRADA correspondente, na ordem original das linhas.
func (s *vendaService) estornarItens(tx *gorm.DB, ator Ator, venda *model.Venda, origem, observacao string) error {
	for _, item := range venda.Itens {
		if err := s.estoque.GarantirTx(tx, item.IDVariacao); err != nil {
			return err
		}
		if err := s.estoque.CreditarTx(tx, item.IDVariacao, item.Quantidade); err != nil {
			return err
		}
		idVenda := venda.ID
		if err := s.movs.CreateTx(tx, &model.MovimentacaoEstoque{
			IDVariacao:    item.IDVariacao,
			Tipo:          model.MovEntrada,
			Quantidade:    item.Quantidade,
			Observacao:    observacao,
			Origem:        origem,
			IDVendaOrigem: &idVenda,
			IDUsuario:     ator.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *vendaService) AplicarDescontoItem(ctx context.Context, ator Ator, idVenda, idItem int64, req dto.DescontoItemRequest) (*dto.TotaisVendaResponse, error) {
	var out *dto.TotaisVendaResponse
	err := s.txr.Run(ctx, func(tx *gorm.DB) error {
		venda, err := s.vendas.FindByIDTx(tx, idVenda)
		if err != nil {
			return traduzNaoEncontrado(err, "venda não encontrada")
		}
		if venda.Status != model.VendaConcluida {
			return apierror.Conflito("apenas vendas concluídas aceitam ajuste de desconto").
				WithDetalhe("status", venda.Status)
		}
		item, err := s.vendas.FindItemTx(tx, idVenda, idItem)
		if err != nil {
			return traduzNaoEncontrado(err, "item não encontrado na venda")
		}

		var linha LinhaCalculada
		switch req.Tipo {
		case "percent":
			if verr := s.policy.Validar(req.Valor, req.Motivo, ator); verr != nil {
				return verr
			}
			calc, cerr := s.policy.CalcularPorPercent(item.PrecoUnitOriginal, item.Quantidade, req.Valor)
			if cerr != nil {
				return cerr
			}
			linha = calc
		case "valor":
			calc, cerr := s.policy.CalcularPorValor(item.PrecoUnitOriginal, item.Quantidade, req.Valor)
			if cerr != nil {
				return cerr
			}
			// O teto por perfil vale também para o percentual derivado.
			if verr := s.policy.Validar(calc.DescontoPercent, req.Motivo, ator); verr != nil {
				return verr
			}
			linha = calc
		default:
			return apierror.Validacao("tipo de desconto deve ser percent ou valor")
		}

		item.DescontoPercent = linha.DescontoPercent
		item.DescontoValor = linha.DescontoValor
		item.PrecoUnit = linha.PrecoUnit
		item.Subtotal = linha.Subtotal
		if linha.DescontoValor.IsZero() {
			item.MotivoDesconto = nil
		} else {
			motivo := req.Motivo
			item.MotivoDesconto = &motivo
		}
		if err := s.vendas.UpdateItemDescontoTx(tx, item); err != nil {
			return err
		}

		// Os agregados da venda são recomputados somando as linhas já
		// arredondadas, nunca re-arredondando a soma.
		itens, err := s.vendas.FindItensTx(tx, idVenda)
		if err != nil {
			return err
		}
		totalBruto := decimal.Zero
		descontoTotal := decimal.Zero
		for _, it := range itens {
			qtd := decimal.NewFromInt(int64(it.Quantidade))
			totalBruto = totalBruto.Add(round2(it.PrecoUnitOriginal.Mul(qtd)))
			descontoTotal = descontoTotal.Add(it.DescontoValor)
		}
		total := totalBruto.Sub(descontoTotal)
		if err := s.vendas.UpdateTotaisTx(tx, idVenda, totalBruto, descontoTotal, total); err != nil {
			return err
		}

		out = &dto.TotaisVendaResponse{
			IDVenda:            idVenda,
			IDItem:             idItem,
			SubtotalBruto:      linha.Bruto,
			DescontoValor:      linha.DescontoValor,
			DescontoPercent:    linha.DescontoPercent,
			SubtotalFinal:      linha.Subtotal,
			TotalVendaBruto:    totalBruto,
			TotalVendaDesconto: descontoTotal,
			TotalVendaFinal:    total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *vendaService) ObterVenda(ctx context.Context, id int64) (*dto.VendaResponse, error) {
	venda, err := s.vendas.FindByID(ctx, id)
	if err != nil {
		return nil, traduzNaoEncontrado(err, "venda não encontrada")
	}
	return toVendaResponse(venda), nil
}

func (s *vendaService) ListarVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	vendas, total, err := s.vendas.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		out = append(out, *toVendaResponse(&vendas[i]))
	}
	return &dto.VendaListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *vendaService) ListarMovimentacoesVenda(ctx context.Context, idVenda int64) ([]dto.MovimentacaoResponse, error) {
	if _, err := s.vendas.FindByID(ctx, idVenda); err != nil {
		return nil, traduzNaoEncontrado(err, "venda não encontrada")
	}
	movs, err := s.movs.ListByVenda(ctx, idVenda)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for i := range movs {
		out = append(out, *toMovimentacaoResponse(&movs[i]))
	}
	return out, nil
}

func (s *vendaService) BloqueadaPorFiscal(ctx context.Context, idVenda int64) (bool, error) {
	doc, err := s.fiscais.FindByVenda(ctx, idVenda)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return doc.Status == model.FiscalEmitida, nil
}

func formaPagamentoValida(forma string) bool {
	for _, f := range model.FormasPagamento {
		if f == forma {
			return true
		}
	}
	return false
}

// mesmaDataUTC compara apenas a data-calendário das duas marcas, em UTC.
func mesmaDataUTC(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func traduzNaoEncontrado(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NaoEncontrado(msg)
	}
	return err
}

func toVendaResponse(v *model.Venda) *dto.VendaResponse {
	itens := make([]dto.ItemVendaResponse, 0, len(v.Itens))
	for _, it := range v.Itens {
		resp := dto.ItemVendaResponse{
			IDItem:            it.ID,
			IDVariacao:        it.IDVariacao,
			Quantidade:        it.Quantidade,
			PrecoUnitOriginal: it.PrecoUnitOriginal,
			DescontoPercent:   it.DescontoPercent,
			DescontoValor:     it.DescontoValor,
			MotivoDesconto:    it.MotivoDesconto,
			PrecoUnit:         it.PrecoUnit,
			Subtotal:          it.Subtotal,
		}
		if it.Variacao != nil {
			resp.SKU = it.Variacao.SKU
		}
		itens = append(itens, resp)
	}

	var motivo *string
	switch v.Status {
	case model.VendaCancelada:
		motivo = v.MotivoCancelamento
	case model.VendaDevolvida:
		motivo = v.MotivoDevolucao
	}

	return &dto.VendaResponse{
		IDVenda:        v.ID,
		Status:         v.Status,
		FormaPagamento: v.FormaPagamento,
		TotalBruto:     v.TotalBruto,
		DescontoTotal:  v.DescontoTotal,
		Total:          v.Total,
		Motivo:         motivo,
		Itens:          itens,
		CriadoEm:       v.CriadoEm.UTC().Format(time.RFC3339),
	}
}
