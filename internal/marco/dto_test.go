package marco

import (
	"errors"
	"testing"
	"time"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
)

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func TestAtualizarRejeitaDerivados(t *testing.T) {
	m := &models.Marco{Status: models.MarcoEmAndamento, Progresso: 40}

	dto := marcoUpdateDTO{Status: strPtr(models.MarcoConcluido)}
	_, err := dto.aplicar(m)
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("escrita direta de status: erro = %v, esperado ValidationError", err)
	}
	if ve.Field != "status" {
		t.Fatalf("campo = %q, esperado status", ve.Field)
	}

	dto = marcoUpdateDTO{Progresso: intPtr(100)}
	_, err = dto.aplicar(m)
	if !errors.As(err, &ve) {
		t.Fatalf("escrita direta de progresso: erro = %v, esperado ValidationError", err)
	}
	if m.Progresso != 40 || m.Status != models.MarcoEmAndamento {
		t.Fatalf("derivados mudaram apesar da rejeição: %+v", m)
	}
}

func TestAtualizarBaselineTravada(t *testing.T) {
	fim := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	m := &models.Marco{
		BaselineTravada: true,
		BaselineStatus:  models.BaselineFirmada,
		BaselineFim:     fim,
	}

	for nome, dto := range map[string]marcoUpdateDTO{
		"baseline_inicio":    {BaselineInicio: timePtr(fim.AddDate(0, 0, -30))},
		"baseline_fim":       {BaselineFim: timePtr(fim.AddDate(0, 0, 15))},
		"baseline_faturavel": {BaselineFaturavel: floatPtr(99999)},
	} {
		_, err := dto.aplicar(m)
		var ife *apperrors.ImmutableFieldError
		if !errors.As(err, &ife) {
			t.Fatalf("%s com baseline travada: erro = %v, esperado ImmutableFieldError", nome, err)
		}
	}
	if !m.BaselineFim.Equal(fim) {
		t.Fatalf("baselineFim mudou apesar da rejeição: %v", m.BaselineFim)
	}

	// previsto continua revisável com a baseline travada
	dto := marcoUpdateDTO{PrevistoFim: timePtr(fim.AddDate(0, 0, 7))}
	campos, err := dto.aplicar(m)
	if err != nil {
		t.Fatalf("previsto com baseline travada: %v", err)
	}
	if len(campos) != 1 || campos[0] != "previsto_fim" {
		t.Fatalf("campos = %v, esperado [previsto_fim]", campos)
	}
}

func TestAtualizarBaselineDestravada(t *testing.T) {
	m := &models.Marco{BaselineStatus: models.BaselineNaoFirmada}
	dto := marcoUpdateDTO{
		Nome:              strPtr("Homologação"),
		BaselineFaturavel: floatPtr(12000),
	}

	campos, err := dto.aplicar(m)
	if err != nil {
		t.Fatalf("aplicar: %v", err)
	}
	if m.Nome != "Homologação" || m.BaselineFaturavel != 12000 {
		t.Fatalf("campos não transferidos: %+v", m)
	}
	if len(campos) != 2 {
		t.Fatalf("campos = %v, esperado [nome baseline_faturavel]", campos)
	}
}
