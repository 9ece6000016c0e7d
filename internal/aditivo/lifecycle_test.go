package aditivo

import (
	"errors"
	"testing"
	"time"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
)

func assinaturaDe(id uint, nome, papel string) models.Assinatura {
	return models.Assinatura{UsuarioID: id, Nome: nome, Papel: papel, AssinadoEm: time.Now()}
}

func TestSubmeter(t *testing.T) {
	a := &models.Aditivo{Status: models.AditivoRascunho}
	if err := submeter(a); err != nil {
		t.Fatalf("submeter: %v", err)
	}
	if a.Status != models.AditivoSubmetido {
		t.Fatalf("status = %q, esperado %q", a.Status, models.AditivoSubmetido)
	}

	err := submeter(&models.Aditivo{Status: models.AditivoAprovado})
	var ist *apperrors.InvalidStateTransition
	if !errors.As(err, &ist) {
		t.Fatalf("submeter aprovado: erro = %v, esperado InvalidStateTransition", err)
	}
}

func TestAssinarAteAprovado(t *testing.T) {
	a := &models.Aditivo{Status: models.AditivoSubmetido}

	if err := assinar(a, models.LadoCliente, assinaturaDe(2, "Bruno", "cliente")); err != nil {
		t.Fatalf("primeira assinatura: %v", err)
	}
	if a.Status != models.AditivoAguardandoFornecedor {
		t.Fatalf("status = %q, esperado %q", a.Status, models.AditivoAguardandoFornecedor)
	}

	if err := assinar(a, models.LadoFornecedor, assinaturaDe(1, "Ana", "fornecedor")); err != nil {
		t.Fatalf("segunda assinatura: %v", err)
	}
	if a.Status != models.AditivoAprovado {
		t.Fatalf("status = %q, esperado %q", a.Status, models.AditivoAprovado)
	}
}

func TestAssinarMesmoLadoFalha(t *testing.T) {
	a := &models.Aditivo{Status: models.AditivoSubmetido}
	if err := assinar(a, models.LadoFornecedor, assinaturaDe(1, "Ana", "fornecedor")); err != nil {
		t.Fatalf("primeira assinatura: %v", err)
	}

	err := assinar(a, models.LadoFornecedor, assinaturaDe(1, "Ana", "fornecedor"))
	var ist *apperrors.InvalidStateTransition
	if !errors.As(err, &ist) {
		t.Fatalf("erro = %v, esperado InvalidStateTransition", err)
	}
}

func TestAssinarRascunhoFalha(t *testing.T) {
	a := &models.Aditivo{Status: models.AditivoRascunho}
	err := assinar(a, models.LadoFornecedor, assinaturaDe(1, "Ana", "fornecedor"))
	var ist *apperrors.InvalidStateTransition
	if !errors.As(err, &ist) {
		t.Fatalf("erro = %v, esperado InvalidStateTransition", err)
	}
}

func TestRejeitarApenasSubmetido(t *testing.T) {
	a := &models.Aditivo{Status: models.AditivoSubmetido}
	if err := rejeitar(a, "fora do orçamento"); err != nil {
		t.Fatalf("rejeitar: %v", err)
	}
	if a.Status != models.AditivoRejeitado || a.MotivoRejeicao != "fora do orçamento" {
		t.Fatalf("rejeição não registrada: %+v", a)
	}

	// depois da primeira assinatura, rejeitar deixa de ser aceito
	b := &models.Aditivo{Status: models.AditivoAguardandoCliente}
	err := rejeitar(b, "tarde demais")
	var ist *apperrors.InvalidStateTransition
	if !errors.As(err, &ist) {
		t.Fatalf("rejeitar após assinatura: erro = %v, esperado InvalidStateTransition", err)
	}
}

func TestRejeitarExigeMotivo(t *testing.T) {
	a := &models.Aditivo{Status: models.AditivoSubmetido}
	err := rejeitar(a, "")
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("erro = %v, esperado ValidationError", err)
	}
}

func TestEditavelApenasRascunho(t *testing.T) {
	if err := editavel(&models.Aditivo{Status: models.AditivoRascunho}); err != nil {
		t.Fatalf("rascunho deveria ser editável: %v", err)
	}
	for _, s := range []string{
		models.AditivoSubmetido, models.AditivoAguardandoFornecedor,
		models.AditivoAprovado, models.AditivoAplicado, models.AditivoRejeitado,
	} {
		err := editavel(&models.Aditivo{Status: s})
		var ife *apperrors.ImmutableFieldError
		if !errors.As(err, &ife) {
			t.Fatalf("editar em %q: erro = %v, esperado ImmutableFieldError", s, err)
		}
	}
}

func TestDeletavel(t *testing.T) {
	for _, s := range []string{models.AditivoRascunho, models.AditivoSubmetido, models.AditivoRejeitado} {
		if err := deletavel(&models.Aditivo{Status: s}); err != nil {
			t.Fatalf("%q deveria ser deletável: %v", s, err)
		}
	}
	for _, s := range []string{
		models.AditivoAguardandoFornecedor, models.AditivoAguardandoCliente,
		models.AditivoAprovado, models.AditivoAplicado,
	} {
		err := deletavel(&models.Aditivo{Status: s})
		var ife *apperrors.ImmutableFieldError
		if !errors.As(err, &ife) {
			t.Fatalf("deletar em %q: erro = %v, esperado ImmutableFieldError", s, err)
		}
	}
}
