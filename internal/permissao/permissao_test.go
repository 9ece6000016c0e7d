package permissao

import (
	"errors"
	"testing"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
)

func TestPermitido(t *testing.T) {
	casos := []struct {
		papel    string
		operacao string
		quer     bool
	}{
		{PapelAdmin, OpResetarBaseline, true},
		{PapelFornecedor, OpResetarBaseline, false},
		{PapelCliente, OpResetarBaseline, false},

		{PapelColaborador, OpProgressoEntregavel, true},
		{PapelColaborador, OpSubmeterRevisao, false},
		{PapelColaborador, OpAssinarEntrega, false},

		{PapelCliente, OpAceitarRevisao, true},
		{PapelCliente, OpRetornarEntregavel, true},
		{PapelFornecedor, OpAceitarRevisao, false},

		{PapelFornecedor, OpGerarCertificado, true},
		{PapelCliente, OpGerarCertificado, false},
		{PapelCliente, OpAssinarCertificado, true},

		{PapelCliente, OpRejeitarAditivo, true},
		{PapelCliente, OpAplicarAditivo, false},
		{PapelVisualizador, OpLerProjeto, true},
		{PapelVisualizador, OpCriarMarco, false},

		{"", OpLerProjeto, false},
		{PapelAdmin, "operacao.inexistente", false},
	}
	for _, c := range casos {
		if got := Permitido(c.papel, c.operacao); got != c.quer {
			t.Fatalf("Permitido(%q, %q) = %v, esperado %v", c.papel, c.operacao, got, c.quer)
		}
	}
}

func TestExigir(t *testing.T) {
	if err := Exigir(PapelFornecedor, OpCriarMarco); err != nil {
		t.Fatalf("Exigir permitido: %v", err)
	}

	err := Exigir(PapelVisualizador, OpCriarMarco)
	var pd *apperrors.PermissionDenied
	if !errors.As(err, &pd) {
		t.Fatalf("erro = %v, esperado PermissionDenied", err)
	}
}

func TestLadoParaPapel(t *testing.T) {
	if lado, err := LadoParaPapel(PapelFornecedor, ""); err != nil || lado != models.LadoFornecedor {
		t.Fatalf("fornecedor: lado=%q err=%v", lado, err)
	}
	if lado, err := LadoParaPapel(PapelCliente, ""); err != nil || lado != models.LadoCliente {
		t.Fatalf("cliente: lado=%q err=%v", lado, err)
	}

	// admin assina pelo fornecedor por padrão, ou pelo lado indicado
	if lado, err := LadoParaPapel(PapelAdmin, ""); err != nil || lado != models.LadoFornecedor {
		t.Fatalf("admin padrão: lado=%q err=%v", lado, err)
	}
	if lado, err := LadoParaPapel(PapelAdmin, models.LadoCliente); err != nil || lado != models.LadoCliente {
		t.Fatalf("admin explícito: lado=%q err=%v", lado, err)
	}

	// fornecedor não assina pelo lado do cliente
	if _, err := LadoParaPapel(PapelFornecedor, models.LadoCliente); err == nil {
		t.Fatal("fornecedor assinando pelo cliente deveria falhar")
	}

	// visualizador e colaborador não assinam
	for _, papel := range []string{PapelVisualizador, PapelColaborador} {
		if _, err := LadoParaPapel(papel, ""); err == nil {
			t.Fatalf("%q não deveria poder assinar", papel)
		}
	}
}

func TestLadoBaselineParaPapel(t *testing.T) {
	// na baseline o slot cliente exige o papel cliente; admin não pode
	// preencher os dois lados e travar a baseline sozinho
	_, err := LadoBaselineParaPapel(PapelAdmin, models.LadoCliente)
	var pd *apperrors.PermissionDenied
	if !errors.As(err, &pd) {
		t.Fatalf("admin no slot cliente da baseline: erro = %v, esperado PermissionDenied", err)
	}

	if lado, err := LadoBaselineParaPapel(PapelAdmin, ""); err != nil || lado != models.LadoFornecedor {
		t.Fatalf("admin na baseline: lado=%q err=%v", lado, err)
	}
	if lado, err := LadoBaselineParaPapel(PapelCliente, ""); err != nil || lado != models.LadoCliente {
		t.Fatalf("cliente na baseline: lado=%q err=%v", lado, err)
	}
	if lado, err := LadoBaselineParaPapel(PapelFornecedor, ""); err != nil || lado != models.LadoFornecedor {
		t.Fatalf("fornecedor na baseline: lado=%q err=%v", lado, err)
	}
}
