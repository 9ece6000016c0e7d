package financeiro

import (
	"math"
	"time"

	"github.com/delivera/api-delivery/internal/models"
)

// Funções puras de cálculo financeiro: convertem esforço apontado em valor
// monetário e medem variação entre as camadas baseline / previsto / realizado.

// ValorEsforco converte horas apontadas em valor faturável.
func ValorEsforco(horas, taxaHoraria float64) float64 {
	if horas <= 0 || taxaHoraria <= 0 {
		return 0
	}
	return arredondar2(horas * taxaHoraria)
}

// Variacao resume a diferença entre um valor de referência e o valor corrente.
type Variacao struct {
	Absoluta   float64 `json:"absoluta"`
	Percentual float64 `json:"percentual"`
}

// VariacaoCusto compara duas camadas financeiras (ex.: baseline vs. previsto).
// Percentual é relativo à referência; com referência zero, fica zero.
func VariacaoCusto(referencia, atual float64) Variacao {
	v := Variacao{Absoluta: arredondar2(atual - referencia)}
	if referencia != 0 {
		v.Percentual = arredondar2((atual - referencia) / referencia * 100)
	}
	return v
}

// VariacaoPrazoDias retorna o deslocamento em dias corridos entre o fim de
// baseline e o fim previsto (positivo = atraso).
func VariacaoPrazoDias(baselineFim, previstoFim time.Time) int {
	return int(previstoFim.Sub(baselineFim).Hours() / 24)
}

// ResumoProjeto agrega as três camadas financeiras de um conjunto de marcos.
type ResumoProjeto struct {
	BaselineFaturavel float64  `json:"baselineFaturavel"`
	PrevistoFaturavel float64  `json:"previstoFaturavel"`
	Faturavel         float64  `json:"faturavel"`
	VariacaoPrevisto  Variacao `json:"variacaoPrevisto"`
	VariacaoRealizado Variacao `json:"variacaoRealizado"`
}

// Resumir soma as camadas de todos os marcos e calcula as variações contra a
// baseline consolidada.
func Resumir(marcos []models.Marco) ResumoProjeto {
	var r ResumoProjeto
	for _, m := range marcos {
		r.BaselineFaturavel += m.BaselineFaturavel
		r.PrevistoFaturavel += m.PrevistoFaturavel
		r.Faturavel += m.Faturavel
	}
	r.BaselineFaturavel = arredondar2(r.BaselineFaturavel)
	r.PrevistoFaturavel = arredondar2(r.PrevistoFaturavel)
	r.Faturavel = arredondar2(r.Faturavel)
	r.VariacaoPrevisto = VariacaoCusto(r.BaselineFaturavel, r.PrevistoFaturavel)
	r.VariacaoRealizado = VariacaoCusto(r.BaselineFaturavel, r.Faturavel)
	return r
}

func arredondar2(v float64) float64 {
	return math.Round(v*100) / 100
}
