package marco

import (
	"time"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
)

type marcoCreateDTO struct {
	Codigo            string    `json:"codigo"`
	Nome              string    `json:"nome"`
	BaselineInicio    time.Time `json:"baselineInicio"`
	BaselineFim       time.Time `json:"baselineFim"`
	BaselineFaturavel float64   `json:"baselineFaturavel"`
	PrevistoInicio    time.Time `json:"previstoInicio"`
	PrevistoFim       time.Time `json:"previstoFim"`
	PrevistoFaturavel float64   `json:"previstoFaturavel"`
	Faturavel         float64   `json:"faturavel"`
}

// Campos ponteiro distinguem "não veio" de "veio zerado". Status e Progresso
// aparecem aqui só para serem rejeitados: são derivados, nunca entrada.
type marcoUpdateDTO struct {
	Codigo            *string    `json:"codigo"`
	Nome              *string    `json:"nome"`
	BaselineInicio    *time.Time `json:"baselineInicio"`
	BaselineFim       *time.Time `json:"baselineFim"`
	BaselineFaturavel *float64   `json:"baselineFaturavel"`
	PrevistoInicio    *time.Time `json:"previstoInicio"`
	PrevistoFim       *time.Time `json:"previstoFim"`
	PrevistoFaturavel *float64   `json:"previstoFaturavel"`
	InicioReal        *time.Time `json:"inicioReal"`
	Faturavel         *float64   `json:"faturavel"`

	Status    *string `json:"status"`
	Progresso *int    `json:"progresso"`
}

// aplicar valida o DTO contra o marco persistido e transfere os campos
// presentes, devolvendo as colunas a gravar. Status e progresso são derivados
// e nunca aceitos como escrita direta; campos de baseline são imutáveis
// enquanto travada (só mudam por aditivo aplicado).
func (dto *marcoUpdateDTO) aplicar(m *models.Marco) ([]string, error) {
	if dto.Status != nil {
		return nil, apperrors.Validation("marco", m.ID, "status", "campo derivado; nunca aceito como escrita direta")
	}
	if dto.Progresso != nil {
		return nil, apperrors.Validation("marco", m.ID, "progresso", "campo derivado; nunca aceito como escrita direta")
	}
	if m.BaselineTravada {
		for campo, presente := range map[string]bool{
			"baseline_inicio":    dto.BaselineInicio != nil,
			"baseline_fim":       dto.BaselineFim != nil,
			"baseline_faturavel": dto.BaselineFaturavel != nil,
		} {
			if presente {
				return nil, apperrors.Immutable("marco", m.ID, campo, models.BaselineFirmada)
			}
		}
	}

	var campos []string
	if dto.Codigo != nil {
		m.Codigo = *dto.Codigo
		campos = append(campos, "codigo")
	}
	if dto.Nome != nil {
		m.Nome = *dto.Nome
		campos = append(campos, "nome")
	}
	if dto.PrevistoInicio != nil {
		m.PrevistoInicio = *dto.PrevistoInicio
		campos = append(campos, "previsto_inicio")
	}
	if dto.PrevistoFim != nil {
		m.PrevistoFim = *dto.PrevistoFim
		campos = append(campos, "previsto_fim")
	}
	if dto.PrevistoFaturavel != nil {
		m.PrevistoFaturavel = *dto.PrevistoFaturavel
		campos = append(campos, "previsto_faturavel")
	}
	if dto.InicioReal != nil {
		m.InicioReal = dto.InicioReal
		campos = append(campos, "inicio_real")
	}
	if dto.Faturavel != nil {
		m.Faturavel = *dto.Faturavel
		campos = append(campos, "faturavel")
	}
	if dto.BaselineInicio != nil {
		m.BaselineInicio = *dto.BaselineInicio
		campos = append(campos, "baseline_inicio")
	}
	if dto.BaselineFim != nil {
		m.BaselineFim = *dto.BaselineFim
		campos = append(campos, "baseline_fim")
	}
	if dto.BaselineFaturavel != nil {
		m.BaselineFaturavel = *dto.BaselineFaturavel
		campos = append(campos, "baseline_faturavel")
	}
	return campos, nil
}

type assinarDTO struct {
	// lado explícito, só relevante para admin ("fornecedor" | "cliente")
	Lado string `json:"lado"`
}
