package marco

import (
	"math"

	"github.com/delivera/api-delivery/internal/models"
)

// Recalcular deriva status e progresso do marco a partir do conjunto de
// entregáveis. Os dois campos nunca são aceitos como escrita direta; toda
// criação/edição/remoção de entregável dispara este cálculo na mesma transação.
func Recalcular(entregaveis []models.Entregavel) (status string, progresso int) {
	if len(entregaveis) == 0 {
		return models.MarcoNaoIniciado, 0
	}

	soma := 0
	todosEntregues := true
	todosNaoIniciados := true
	for _, e := range entregaveis {
		soma += e.Progresso
		if e.Status != models.EntregavelEntregue {
			todosEntregues = false
		}
		if e.Status != models.EntregavelNaoIniciado {
			todosNaoIniciados = false
		}
	}

	// média com arredondamento half-up
	media := float64(soma) / float64(len(entregaveis))
	progresso = int(math.Floor(media + 0.5))

	switch {
	case todosEntregues:
		status = models.MarcoConcluido
	case todosNaoIniciados:
		status = models.MarcoNaoIniciado
	default:
		status = models.MarcoEmAndamento
	}
	return status, progresso
}
