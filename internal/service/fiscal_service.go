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

	"gorm.io/gorm"
)

// FiscalService emite e cancela o documento fiscal simulado de uma venda.
// Numeração sequencial por MAX+1 — correta apenas porque toda emissão
// roda sob a serialização do TxRunner.
type FiscalService interface {
	Emitir(ctx context.Context, ator Ator, idVenda int64) (*dto.DocumentoFiscalResponse, error)
	Cancelar(ctx context.Context, ator Ator, idVenda int64, motivo string) (*dto.DocumentoFiscalResponse, error)
	ObterPorVenda(ctx context.Context, idVenda int64) (*dto.DocumentoFiscalResponse, error)
}

type fiscalService struct {
	txr     *repository.TxRunner
	vendas  repository.VendaRepository
	fiscais repository.DocumentoFiscalRepository
}

func NewFiscalService(txr *repository.TxRunner, vendas repository.VendaRepository, fiscais repository.DocumentoFiscalRepository) FiscalService {
	return &fiscalService{txr: txr, vendas: vendas, fiscais: fiscais}
}

func (s *fiscalService) Emitir(ctx context.Context, ator Ator, idVenda int64) (*dto.DocumentoFiscalResponse, error) {
	var doc *model.DocumentoFiscal
	err := s.txr.Run(ctx, func(tx *gorm.DB) error {
		venda, err := s.vendas.FindByIDTx(tx, idVenda)
		if err != nil {
			return traduzNaoEncontrado(err, "venda não encontrada")
		}
		if venda.Status != model.VendaConcluida {
			return apierror.Conflito("documento fiscal só pode ser emitido para venda concluída").
				WithDetalhe("status", venda.Status)
		}

		if existente, err := s.fiscais.FindByVendaTx(tx, idVenda); err == nil {
			return apierror.Conflito("venda já possui documento fiscal").
				WithDetalhe("id_documento", existente.ID).
				WithDetalhe("status_documento", existente.Status)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		numero, err := s.fiscais.ProximoNumeroTx(tx)
		if err != nil {
			return err
		}
		doc = &model.DocumentoFiscal{
			IDVenda:     idVenda,
			Numero:      numero,
			Serie:       "1",
			Status:      model.FiscalEmitida,
			ChaveAcesso: fmt.Sprintf("DF-%d-%d", idVenda, numero),
			ValorTotal:  venda.Total,
		}
		return s.fiscais.CreateTx(tx, doc)
	})
	if err != nil {
		return nil, err
	}
	return toDocumentoResponse(doc), nil
}

func (s *fiscalService) Cancelar(ctx context.Context, ator Ator, idVenda int64, motivo string) (*dto.DocumentoFiscalResponse, error) {
	if len(motivo) < 3 {
		return nil, apierror.New(apierror.CodigoMotivoObrigatorio, "motivo do cancelamento é obrigatório")
	}

	err := s.txr.Run(ctx, func(tx *gorm.DB) error {
		doc, err := s.fiscais.FindByVendaTx(tx, idVenda)
		if err != nil {
			return traduzNaoEncontrado(err, "documento fiscal não encontrado")
		}
		if doc.Status != model.FiscalEmitida {
			return apierror.Conflito("documento fiscal já cancelado")
		}
		ok, err := s.fiscais.CancelarTx(tx, idVenda, motivo)
		if err != nil {
			return err
		}
		if !ok {
			return apierror.Conflito("documento alterado por outra operação; tente novamente")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ObterPorVenda(ctx, idVenda)
}

func (s *fiscalService) ObterPorVenda(ctx context.Context, idVenda int64) (*dto.DocumentoFiscalResponse, error) {
	doc, err := s.fiscais.FindByVenda(ctx, idVenda)
	if err != nil {
		return nil, traduzNaoEncontrado(err, "documento fiscal não encontrado")
	}
	return toDocumentoResponse(doc), nil
}

func toDocumentoResponse(doc *model.DocumentoFiscal) *dto.DocumentoFiscalResponse {
	return &dto.DocumentoFiscalResponse{
		IDDocumento: doc.ID,
		IDVenda:     doc.IDVenda,
		Numero:      doc.Numero,
		Serie:       doc.Serie,
		Status:      doc.Status,
		ChaveAcesso: doc.ChaveAcesso,
		ValorTotal:  doc.ValorTotal,
		CriadoEm:    doc.CriadoEm.UTC().Format(time.RFC3339),
	}
}
