package aditivo

import (
	"time"

	"github.com/delivera/api-delivery/internal/models"
)

// Aplicação de um aditivo aprovado: único caminho sancionado para alterar uma
// linha de base travada.

// deltaDias traduz o impacto em dias segundo o tipo: extensões somam, redução
// de escopo subtrai, ajuste de custo não mexe em prazo.
func deltaDias(tipo string, impactoDias int) int {
	switch tipo {
	case models.AditivoExtensaoEscopo, models.AditivoExtensaoPrazo:
		return impactoDias
	case models.AditivoReducaoEscopo:
		return -impactoDias
	}
	return 0
}

// deslocarData move a data em dias corridos ou, quando configurado, em dias
// úteis (fins de semana pulados nas duas direções).
func deslocarData(t time.Time, dias int, diasUteis bool) time.Time {
	if !diasUteis || dias == 0 {
		return t.AddDate(0, 0, dias)
	}
	passo := 1
	if dias < 0 {
		passo = -1
		dias = -dias
	}
	for dias > 0 {
		t = t.AddDate(0, 0, passo)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			dias--
		}
	}
	return t
}

// aplicarNoMarco grava a versão corrente no histórico e ajusta o cronograma e
// o faturável de baseline, incrementando a versão monotônica.
func aplicarNoMarco(m *models.Marco, imp models.ImpactoMarco, tipo string, diasUteis bool, aditivoID uint, agora time.Time) {
	m.HistoricoBaseline = append(m.HistoricoBaseline, models.SnapshotBaseline{
		Versao:    m.BaselineVersao,
		Inicio:    m.BaselineInicio,
		Fim:       m.BaselineFim,
		Faturavel: m.BaselineFaturavel,
		AditivoID: aditivoID,
		GravadoEm: agora,
	})

	dias := deltaDias(tipo, imp.ImpactoDias)
	m.BaselineInicio = deslocarData(m.BaselineInicio, dias, diasUteis)
	m.BaselineFim = deslocarData(m.BaselineFim, dias, diasUteis)
	m.BaselineFaturavel += imp.ImpactoCusto
	m.BaselineVersao++
}
