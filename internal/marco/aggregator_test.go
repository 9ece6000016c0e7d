package marco

import (
	"testing"

	"github.com/delivera/api-delivery/internal/models"
)

func TestRecalcularSemEntregaveis(t *testing.T) {
	status, progresso := Recalcular(nil)
	if status != models.MarcoNaoIniciado {
		t.Fatalf("status = %q, esperado %q", status, models.MarcoNaoIniciado)
	}
	if progresso != 0 {
		t.Fatalf("progresso = %d, esperado 0", progresso)
	}
}

func TestRecalcularMediaArredondada(t *testing.T) {
	entregaveis := []models.Entregavel{
		{Progresso: 100, Status: models.EntregavelEntregue},
		{Progresso: 100, Status: models.EntregavelEntregue},
		{Progresso: 80, Status: models.EntregavelEmAndamento},
	}
	status, progresso := Recalcular(entregaveis)
	if progresso != 93 {
		t.Fatalf("progresso = %d, esperado 93", progresso)
	}
	if status != models.MarcoEmAndamento {
		t.Fatalf("status = %q, esperado %q", status, models.MarcoEmAndamento)
	}
}

func TestRecalcularTodosEntregues(t *testing.T) {
	entregaveis := []models.Entregavel{
		{Progresso: 100, Status: models.EntregavelEntregue},
		{Progresso: 100, Status: models.EntregavelEntregue},
	}
	status, progresso := Recalcular(entregaveis)
	if status != models.MarcoConcluido {
		t.Fatalf("status = %q, esperado %q", status, models.MarcoConcluido)
	}
	if progresso != 100 {
		t.Fatalf("progresso = %d, esperado 100", progresso)
	}
}

func TestRecalcularTodosNaoIniciados(t *testing.T) {
	entregaveis := []models.Entregavel{
		{Progresso: 0, Status: models.EntregavelNaoIniciado},
		{Progresso: 0, Status: models.EntregavelNaoIniciado},
	}
	status, _ := Recalcular(entregaveis)
	if status != models.MarcoNaoIniciado {
		t.Fatalf("status = %q, esperado %q", status, models.MarcoNaoIniciado)
	}
}

func TestRecalcularMisto(t *testing.T) {
	// um entregue e um parado ainda é "Em Andamento"
	entregaveis := []models.Entregavel{
		{Progresso: 100, Status: models.EntregavelEntregue},
		{Progresso: 0, Status: models.EntregavelNaoIniciado},
	}
	status, progresso := Recalcular(entregaveis)
	if status != models.MarcoEmAndamento {
		t.Fatalf("status = %q, esperado %q", status, models.MarcoEmAndamento)
	}
	if progresso != 50 {
		t.Fatalf("progresso = %d, esperado 50", progresso)
	}
}
