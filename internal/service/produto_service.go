package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/janamirelly/varejosync-poc/internal/apierror"
	"github.com/janamirelly/varejosync-poc/internal/dto"
	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/repository"
)

// ProdutoService mantém o catálogo: produtos e suas variações
// (cor × tamanho), incluindo a geração de variações em lote.
type ProdutoService interface {
	CriarProduto(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ListarProdutos(ctx context.Context) ([]dto.ProdutoResponse, error)
	ObterProduto(ctx context.Context, id int64) (*dto.ProdutoResponse, error)
	CriarVariacao(ctx context.Context, idProduto int64, req dto.CriarVariacaoRequest) (*dto.VariacaoResponse, error)
	CriarVariacoesLote(ctx context.Context, idProduto int64, req dto.CriarVariacoesLoteRequest) (*dto.VariacoesLoteResponse, error)
	ListarVariacoes(ctx context.Context, idProduto int64) ([]dto.VariacaoResponse, error)
	DefinirVariacaoAtiva(ctx context.Context, idVariacao int64, ativo bool) error
}

type produtoService struct {
	produtos  repository.ProdutoRepository
	variacoes repository.VariacaoRepository
}

func NewProdutoService(produtos repository.ProdutoRepository, variacoes repository.VariacaoRepository) ProdutoService {
	return &produtoService{produtos: produtos, variacoes: variacoes}
}

func (s *produtoService) CriarProduto(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
	if err := s.produtos.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProdutoResponse(p), nil
}

func (s *produtoService) ListarProdutos(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.produtos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, *toProdutoResponse(&produtos[i]))
	}
	return out, nil
}

func (s *produtoService) ObterProduto(ctx context.Context, id int64) (*dto.ProdutoResponse, error) {
	p, err := s.produtos.FindByID(ctx, id)
	if err != nil {
		return nil, traduzNaoEncontrado(err, "produto não encontrado")
	}
	return toProdutoResponse(p), nil
}

func (s *produtoService) CriarVariacao(ctx context.Context, idProduto int64, req dto.CriarVariacaoRequest) (*dto.VariacaoResponse, error) {
	if _, err := s.produtos.FindByID(ctx, idProduto); err != nil {
		return nil, traduzNaoEncontrado(err, "produto não encontrado")
	}
	v := &model.VariacaoProduto{
		IDProduto: idProduto,
		Cor:       req.Cor,
		Tamanho:   req.Tamanho,
		SKU:       req.SKU,
		Preco:     round2(req.Preco),
		Ativo:     true,
	}
	if err := s.variacoes.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVariacaoResponse(v), nil
}

// CriarVariacoesLote gera o produto cartesiano cores × tamanhos. SKUs que
// já existem são ignorados silenciosamente e contados em Ignoradas.
func (s *produtoService) CriarVariacoesLote(ctx context.Context, idProduto int64, req dto.CriarVariacoesLoteRequest) (*dto.VariacoesLoteResponse, error) {
	if _, err := s.produtos.FindByID(ctx, idProduto); err != nil {
		return nil, traduzNaoEncontrado(err, "produto não encontrado")
	}
	if len(req.Cores) == 0 || len(req.Tamanhos) == 0 {
		return nil, apierror.Validacao("cores e tamanhos não podem ser vazios")
	}

	preco := round2(req.Preco)
	lote := make([]model.VariacaoProduto, 0, len(req.Cores)*len(req.Tamanhos))
	for _, cor := range req.Cores {
		for _, tamanho := range req.Tamanhos {
			lote = append(lote, model.VariacaoProduto{
				IDProduto: idProduto,
				Cor:       cor,
				Tamanho:   tamanho,
				SKU:       derivarSKU(req.SKUPrefix, cor, tamanho),
				Preco:     preco,
				Ativo:     true,
			})
		}
	}

	inseridas, err := s.variacoes.CreateLote(ctx, lote)
	if err != nil {
		return nil, err
	}

	// Relê para devolver apenas o que de fato entrou, com IDs.
	todas, err := s.variacoes.ListByProduto(ctx, idProduto)
	if err != nil {
		return nil, err
	}
	skus := make(map[string]bool, len(lote))
	for _, v := range lote {
		skus[v.SKU] = true
	}
	out := make([]dto.VariacaoResponse, 0, inseridas)
	for i := range todas {
		if skus[todas[i].SKU] {
			out = append(out, *toVariacaoResponse(&todas[i]))
		}
	}
	return &dto.VariacoesLoteResponse{Inseridas: out, Ignoradas: len(lote) - inseridas}, nil
}

func (s *produtoService) ListarVariacoes(ctx context.Context, idProduto int64) ([]dto.VariacaoResponse, error) {
	if _, err := s.produtos.FindByID(ctx, idProduto); err != nil {
		return nil, traduzNaoEncontrado(err, "produto não encontrado")
	}
	vs, err := s.variacoes.ListByProduto(ctx, idProduto)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariacaoResponse, 0, len(vs))
	for i := range vs {
		out = append(out, *toVariacaoResponse(&vs[i]))
	}
	return out, nil
}

func (s *produtoService) DefinirVariacaoAtiva(ctx context.Context, idVariacao int64, ativo bool) error {
	if _, err := s.variacoes.FindByID(ctx, idVariacao); err != nil {
		return traduzNaoEncontrado(err, "variação não encontrada")
	}
	return s.variacoes.SetAtivo(ctx, idVariacao, ativo)
}

func derivarSKU(prefixo, cor, tamanho string) string {
	norm := func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	}
	return fmt.Sprintf("%s-%s-%s", norm(prefixo), norm(cor), norm(tamanho))
}

func toProdutoResponse(p *model.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{IDProduto: p.ID, Nome: p.Nome, Descricao: p.Descricao, Ativo: p.Ativo}
}

func toVariacaoResponse(v *model.VariacaoProduto) *dto.VariacaoResponse {
	return &dto.VariacaoResponse{
		IDVariacao: v.ID,
		IDProduto:  v.IDProduto,
		Cor:        v.Cor,
		Tamanho:    v.Tamanho,
		SKU:        v.SKU,
		Preco:      v.Preco,
		Ativo:      v.Ativo,
	}
}
