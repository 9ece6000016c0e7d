package marco

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

func TestAssinarBaselineOrdemIndiferente(t *testing.T) {
	ordens := [][2]string{
		{models.LadoFornecedor, models.LadoCliente},
		{models.LadoCliente, models.LadoFornecedor},
	}
	for _, ordem := range ordens {
		m := &models.Marco{BaselineStatus: models.BaselineNaoFirmada}

		if err := assinarBaseline(m, ordem[0], assinaturaDe(1, "Ana", "fornecedor")); err != nil {
			t.Fatalf("primeira assinatura (%s): %v", ordem[0], err)
		}
		if m.BaselineStatus != models.BaselineAguardandoContraparte {
			t.Fatalf("status após primeira = %q, esperado %q", m.BaselineStatus, models.BaselineAguardandoContraparte)
		}
		if m.BaselineTravada {
			t.Fatal("baseline não pode travar com uma assinatura só")
		}

		if err := assinarBaseline(m, ordem[1], assinaturaDe(2, "Bruno", "cliente")); err != nil {
			t.Fatalf("segunda assinatura (%s): %v", ordem[1], err)
		}
		if m.BaselineStatus != models.BaselineFirmada {
			t.Fatalf("status após segunda = %q, esperado %q", m.BaselineStatus, models.BaselineFirmada)
		}
		if !m.BaselineTravada {
			t.Fatal("baseline deveria estar travada após firmar")
		}
	}
}

func TestAssinarBaselineMesmoLadoFalha(t *testing.T) {
	m := &models.Marco{BaselineStatus: models.BaselineNaoFirmada}
	if err := assinarBaseline(m, models.LadoFornecedor, assinaturaDe(1, "Ana", "fornecedor")); err != nil {
		t.Fatalf("primeira assinatura: %v", err)
	}

	err := assinarBaseline(m, models.LadoFornecedor, assinaturaDe(1, "Ana", "fornecedor"))
	var ist *apperrors.InvalidStateTransition
	if !errors.As(err, &ist) {
		t.Fatalf("reassinar o mesmo lado: erro = %v, esperado InvalidStateTransition", err)
	}
}

func TestAssinarBaselineFirmadaFalha(t *testing.T) {
	m := &models.Marco{BaselineStatus: models.BaselineFirmada, BaselineTravada: true}
	err := assinarBaseline(m, models.LadoCliente, assinaturaDe(2, "Bruno", "cliente"))
	var ist *apperrors.InvalidStateTransition
	if !errors.As(err, &ist) {
		t.Fatalf("assinar baseline firmada: erro = %v, esperado InvalidStateTransition", err)
	}
}

func TestResetarBaseline(t *testing.T) {
	m := &models.Marco{BaselineStatus: models.BaselineFirmada, BaselineTravada: true}
	m.AssinaturaBaseline.Preencher(models.LadoFornecedor, assinaturaDe(1, "Ana", "fornecedor"))
	m.AssinaturaBaseline.Preencher(models.LadoCliente, assinaturaDe(2, "Bruno", "cliente"))

	resetarBaseline(m)

	if m.BaselineStatus != models.BaselineNaoFirmada {
		t.Fatalf("status = %q, esperado %q", m.BaselineStatus, models.BaselineNaoFirmada)
	}
	if m.BaselineTravada {
		t.Fatal("baseline deveria estar destravada após o reset")
	}
	if m.AssinaturaBaseline.Fornecedor != nil || m.AssinaturaBaseline.Cliente != nil {
		t.Fatal("assinaturas deveriam ser limpas no reset")
	}
}
