package service

import (
	"context"
	"time"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/repository"

	"gorm.io/gorm"
)

// EstoqueService expõe o saldo por variação, o ajuste manual e o
// histórico de movimentações. As movimentações geradas por venda e
// compensação entram pelo VendaService; aqui entram apenas as manuais.
type EstoqueService interface {
	Consultar(ctx context.Context, idVariacao int64) (*dto.EstoqueResponse, error)
	AtualizarMinimo(ctx context.Context, idVariacao int64, estoqueMin int) (*dto.EstoqueResponse, error)
	ListarDetalhado(ctx context.Context) ([]dto.EstoqueDetalhadoItem, error)
	RegistrarMovimentacao(ctx context.Context, ator Ator, req dto.RegistrarMovimentacaoRequest) (*dto.MovimentacaoResponse, error)
	ListarMovimentacoes(ctx context.Context, filter dto.MovimentacaoFilter) (*dto.MovimentacaoListResponse, error)
}

type estoqueService struct {
	txr       *repository.TxRunner
	estoque   repository.EstoqueRepository
	movs      repository.MovimentacaoRepository
	variacoes repository.VariacaoRepository
}

func NewEstoqueService(
	txr *repository.TxRunner,
	estoque repository.EstoqueRepository,
	movs repository.MovimentacaoRepository,
	variacoes repository.VariacaoRepository,
) EstoqueService {
	return &estoqueService{txr: txr, estoque: estoque, movs: movs, variacoes: variacoes}
}

func (s *estoqueService) Consultar(ctx context.Context, idVariacao int64) (*dto.EstoqueResponse, error) {
	if _, err := s.variacoes.FindByID(ctx, idVariacao); err != nil {
		return nil, traduzNaoEncontrado(err, "variação não encontrada")
	}
	e, err := s.estoque.Consultar(ctx, idVariacao)
	if err != nil {
		return nil, err
	}
	return toEstoqueResponse(e), nil
}

func (s *estoqueService) AtualizarMinimo(ctx context.Context, idVariacao int64, estoqueMin int) (*dto.EstoqueResponse, error) {
	if estoqueMin < 0 {
		return nil, apierror.Validacao("estoque mínimo não pode ser negativo")
	}
	if _, err := s.estoque.Consultar(ctx, idVariacao); err != nil {
		return nil, traduzNaoEncontrado(err, "variação não encontrada")
	}
	if err := s.estoque.AtualizarMinimo(ctx, idVariacao, estoqueMin); err != nil {
		return nil, err
	}
	e, err := s.estoque.Consultar(ctx, idVariacao)
	if err != nil {
		return nil, err
	}
	return toEstoqueResponse(e), nil
}

func (s *estoqueService) ListarDetalhado(ctx context.Context) ([]dto.EstoqueDetalhadoItem, error) {
	linhas, err := s.estoque.ListarDetalhado(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EstoqueDetalhadoItem, 0, len(linhas))
	for _, l := range linhas {
		item := dto.EstoqueDetalhadoItem{
			IDVariacao: l.IDVariacao,
			Quantidade: l.Quantidade,
			EstoqueMin: l.EstoqueMin,
			Abaixo:     l.Quantidade < l.EstoqueMin,
		}
		if l.Variacao != nil {
			item.Cor = l.Variacao.Cor
			item.Tamanho = l.Variacao.Tamanho
			item.SKU = l.Variacao.SKU
			if l.Variacao.Produto != nil {
				item.Produto = l.Variacao.Produto.Nome
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// RegistrarMovimentacao aplica uma movimentação manual: ENTRADA e AJUSTE
// creditam, SAIDA debita condicionalmente. AJUSTE é um acréscimo avulso
// (acerto de inventário), não um set absoluto.
func (s *estoqueService) RegistrarMovimentacao(ctx context.Context, ator Ator, req dto.RegistrarMovimentacaoRequest) (*dto.MovimentacaoResponse, error) {
	switch req.Tipo {
	case model.MovEntrada, model.MovSaida, model.MovAjuste:
	default:
		return nil, apierror.Validacao("tipo de movimentação inválido").
			WithDetalhe("tipo", req.Tipo)
	}

	variacao, err := s.variacoes.FindByID(ctx, req.IDVariacao)
	if err != nil {
		return nil, traduzNaoEncontrado(err, "variação não encontrada")
	}
	if !variacao.Ativo {
		return nil, apierror.New(apierror.CodigoVariacaoInativa, "variação inativa").
			WithDetalhe("id_variacao", req.IDVariacao)
	}

	var out *dto.MovimentacaoResponse
	err = s.txr.Run(ctx, func(tx *gorm.DB) error {
		if err := s.estoque.GarantirTx(tx, req.IDVariacao); err != nil {
			return err
		}
		antes, err := s.estoque.ObterTx(tx, req.IDVariacao)
		if err != nil {
			return err
		}

		switch req.Tipo {
		case model.MovEntrada, model.MovAjuste:
			if err := s.estoque.CreditarTx(tx, req.IDVariacao, req.Quantidade); err != nil {
				return err
			}
		case model.MovSaida:
			ok, err := s.estoque.DebitarTx(tx, req.IDVariacao, req.Quantidade)
			if err != nil {
				return err
			}
			if !ok {
				return apierror.New(apierror.CodigoEstoqueInsuficiente, "estoque insuficiente").
					WithDetalhe("id_variacao", req.IDVariacao).
					WithDetalhe("estoque_atual", antes.Quantidade).
					WithDetalhe("solicitado", req.Quantidade)
			}
		}

		mov := &model.MovimentacaoEstoque{
			IDVariacao: req.IDVariacao,
			Tipo:       req.Tipo,
			Quantidade: req.Quantidade,
			Observacao: req.Observacao,
			Origem:     model.OrigemManual,
			IDUsuario:  ator.ID,
		}
		if err := s.movs.CreateTx(tx, mov); err != nil {
			return err
		}

		depois, err := s.estoque.ObterTx(tx, req.IDVariacao)
		if err != nil {
			return err
		}
		resp := toMovimentacaoResponse(mov)
		resp.EstoqueAnterior = antes.Quantidade
		resp.EstoqueAtual = depois.Quantidade
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *estoqueService) ListarMovimentacoes(ctx context.Context, filter dto.MovimentacaoFilter) (*dto.MovimentacaoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 100
	}
	movs, total, err := s.movs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for i := range movs {
		out = append(out, *toMovimentacaoResponse(&movs[i]))
	}
	return &dto.MovimentacaoListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func toEstoqueResponse(e *model.Estoque) *dto.EstoqueResponse {
	return &dto.EstoqueResponse{
		IDEstoque:    e.ID,
		IDVariacao:   e.IDVariacao,
		Quantidade:   e.Quantidade,
		EstoqueMin:   e.EstoqueMin,
		AtualizadoEm: e.AtualizadoEm.UTC().Format(time.RFC3339),
	}
}

func toMovimentacaoResponse(m *model.MovimentacaoEstoque) *dto.MovimentacaoResponse {
	return &dto.MovimentacaoResponse{
		IDMovimentacao: m.ID,
		IDVariacao:     m.IDVariacao,
		Tipo:           m.Tipo,
		Quantidade:     m.Quantidade,
		Observacao:     m.Observacao,
		Origem:         m.Origem,
		IDVendaOrigem:  m.IDVendaOrigem,
		IDUsuario:      m.IDUsuario,
		CriadoEm:       m.CriadoEm.UTC().Format(time.RFC3339),
	}
}
