package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transições de estado aplicadas com sucesso.
	Transicoes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_transicoes_total",
			Help: "Total de transições de estado aplicadas, por entidade e operação",
		},
		[]string{"entidade", "operacao"},
	)

	// Conflitos de concorrência otimista (escritor perdedor).
	Conflitos = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_conflitos_total",
			Help: "Total de escritas rejeitadas pela guarda otimista",
		},
		[]string{"entidade"},
	)
)
