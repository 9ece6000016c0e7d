package marco

import (
	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
)

// Protocolo de firmamento da linha de base: Não Firmada -> (uma assinatura) ->
// Aguardando Contraparte -> (outra assinatura) -> Firmada, que trava a baseline.

// assinarBaseline muda o marco em memória; o repositório persiste com guarda
// condicional. Reassinar o mesmo lado falha: limpar exige o reset administrativo.
func assinarBaseline(m *models.Marco, lado string, assinatura models.Assinatura) error {
	if m.BaselineStatus == models.BaselineFirmada {
		return apperrors.InvalidTransition("marco", m.ID, "baseline.assinar", m.BaselineStatus)
	}
	if !m.AssinaturaBaseline.Preencher(lado, assinatura) {
		return apperrors.InvalidTransitionMsg("marco", m.ID, "baseline.assinar", m.BaselineStatus,
			"lado '"+lado+"' já assinou; reassinar exige reset administrativo")
	}

	if m.AssinaturaBaseline.Completa() {
		m.BaselineStatus = models.BaselineFirmada
		m.BaselineTravada = true
	} else {
		m.BaselineStatus = models.BaselineAguardandoContraparte
	}
	return nil
}

// resetarBaseline limpa o travamento e as duas assinaturas. Escape raro,
// admin-only e sempre auditado.
func resetarBaseline(m *models.Marco) {
	m.AssinaturaBaseline.Limpar()
	m.BaselineStatus = models.BaselineNaoFirmada
	m.BaselineTravada = false
}
