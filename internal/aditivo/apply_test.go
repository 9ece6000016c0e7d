package aditivo

import (
	"testing"
	"time"

	"github.com/delivera/api-delivery/internal/models"
)

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 0, 0, 0, 0, time.UTC)
}

func TestDeltaDias(t *testing.T) {
	casos := []struct {
		tipo    string
		impacto int
		quer    int
	}{
		{models.AditivoExtensaoEscopo, 10, 10},
		{models.AditivoExtensaoPrazo, 5, 5},
		{models.AditivoReducaoEscopo, 7, -7},
		{models.AditivoAjusteCusto, 30, 0},
	}
	for _, c := range casos {
		if got := deltaDias(c.tipo, c.impacto); got != c.quer {
			t.Fatalf("deltaDias(%q, %d) = %d, esperado %d", c.tipo, c.impacto, got, c.quer)
		}
	}
}

func TestDeslocarDataCorridos(t *testing.T) {
	// sexta + 3 dias corridos = segunda
	sexta := dia(2026, time.March, 6)
	got := deslocarData(sexta, 3, false)
	if quer := dia(2026, time.March, 9); !got.Equal(quer) {
		t.Fatalf("deslocarData = %v, esperado %v", got, quer)
	}
}

func TestDeslocarDataDiasUteis(t *testing.T) {
	// sexta + 3 dias úteis pula o fim de semana: seg, ter, qua
	sexta := dia(2026, time.March, 6)
	got := deslocarData(sexta, 3, true)
	if quer := dia(2026, time.March, 11); !got.Equal(quer) {
		t.Fatalf("deslocarData = %v, esperado %v", got, quer)
	}
}

func TestDeslocarDataDiasUteisNegativo(t *testing.T) {
	// segunda - 2 dias úteis volta para quinta da semana anterior
	segunda := dia(2026, time.March, 9)
	got := deslocarData(segunda, -2, true)
	if quer := dia(2026, time.March, 5); !got.Equal(quer) {
		t.Fatalf("deslocarData = %v, esperado %v", got, quer)
	}
}

func TestAplicarNoMarco(t *testing.T) {
	m := &models.Marco{
		BaselineInicio:    dia(2026, time.April, 1),
		BaselineFim:       dia(2026, time.April, 30),
		BaselineFaturavel: 10000,
		BaselineVersao:    1,
	}
	imp := models.ImpactoMarco{MarcoID: 1, ImpactoCusto: 2500, ImpactoDias: 10}
	agora := dia(2026, time.March, 20)

	aplicarNoMarco(m, imp, models.AditivoExtensaoEscopo, false, 42, agora)

	if !m.BaselineInicio.Equal(dia(2026, time.April, 11)) || !m.BaselineFim.Equal(dia(2026, time.May, 10)) {
		t.Fatalf("cronograma deslocado incorreto: %v .. %v", m.BaselineInicio, m.BaselineFim)
	}
	if m.BaselineFaturavel != 12500 {
		t.Fatalf("baselineFaturavel = %v, esperado 12500", m.BaselineFaturavel)
	}
	if m.BaselineVersao != 2 {
		t.Fatalf("baselineVersao = %d, esperado 2", m.BaselineVersao)
	}

	if len(m.HistoricoBaseline) != 1 {
		t.Fatalf("histórico com %d entradas, esperado 1", len(m.HistoricoBaseline))
	}
	h := m.HistoricoBaseline[0]
	if h.Versao != 1 || h.Faturavel != 10000 || h.AditivoID != 42 || !h.GravadoEm.Equal(agora) {
		t.Fatalf("snapshot do histórico incorreto: %+v", h)
	}
	if !h.Inicio.Equal(dia(2026, time.April, 1)) || !h.Fim.Equal(dia(2026, time.April, 30)) {
		t.Fatalf("snapshot preservou datas erradas: %+v", h)
	}
}

func TestAplicarNoMarcoReducao(t *testing.T) {
	m := &models.Marco{
		BaselineInicio:    dia(2026, time.April, 15),
		BaselineFim:       dia(2026, time.May, 15),
		BaselineFaturavel: 8000,
		BaselineVersao:    3,
	}
	imp := models.ImpactoMarco{MarcoID: 1, ImpactoCusto: -1500, ImpactoDias: 5}

	aplicarNoMarco(m, imp, models.AditivoReducaoEscopo, false, 7, dia(2026, time.April, 1))

	if !m.BaselineFim.Equal(dia(2026, time.May, 10)) {
		t.Fatalf("baselineFim = %v, esperado 2026-05-10", m.BaselineFim)
	}
	if m.BaselineFaturavel != 6500 {
		t.Fatalf("baselineFaturavel = %v, esperado 6500", m.BaselineFaturavel)
	}
	if m.BaselineVersao != 4 {
		t.Fatalf("baselineVersao = %d, esperado 4", m.BaselineVersao)
	}
}
