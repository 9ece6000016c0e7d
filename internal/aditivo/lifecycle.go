package aditivo

import (
	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
)

// Ciclo de vida do aditivo: Rascunho -> Submetido -> Aguardando... -> Aprovado
// -> Aplicado, com Submetido -> Rejeitado como ramo alternativo. Aplicado e
// Rejeitado são terminais. A partir da primeira assinatura o registro é
// imutável e indeletável, preservando a trilha de auditoria.

func submeter(a *models.Aditivo) error {
	if a.Status != models.AditivoRascunho {
		return apperrors.InvalidTransition("aditivo", a.ID, "submeter", a.Status)
	}
	a.Status = models.AditivoSubmetido
	return nil
}

func assinar(a *models.Aditivo, lado string, assinatura models.Assinatura) error {
	switch a.Status {
	case models.AditivoSubmetido, models.AditivoAguardandoFornecedor, models.AditivoAguardandoCliente:
	default:
		return apperrors.InvalidTransition("aditivo", a.ID, "assinar", a.Status)
	}
	if !a.Assinatura.Preencher(lado, assinatura) {
		return apperrors.InvalidTransitionMsg("aditivo", a.ID, "assinar", a.Status,
			"lado '"+lado+"' já assinou")
	}

	switch {
	case a.Assinatura.Completa():
		a.Status = models.AditivoAprovado
	case a.Assinatura.Fornecedor != nil:
		a.Status = models.AditivoAguardandoCliente
	default:
		a.Status = models.AditivoAguardandoFornecedor
	}
	return nil
}

// rejeitar só é aceito a partir de Submetido: depois da primeira assinatura o
// caminho é completar a aprovação ou deixar o registro imutável como está.
func rejeitar(a *models.Aditivo, motivo string) error {
	if a.Status != models.AditivoSubmetido {
		return apperrors.InvalidTransition("aditivo", a.ID, "rejeitar", a.Status)
	}
	if motivo == "" {
		return apperrors.Validation("aditivo", a.ID, "motivo", "obrigatório na rejeição")
	}
	a.Status = models.AditivoRejeitado
	a.MotivoRejeicao = motivo
	return nil
}

// editavel: apenas em Rascunho.
func editavel(a *models.Aditivo) error {
	if a.Status != models.AditivoRascunho {
		return apperrors.Immutable("aditivo", a.ID, "impactos", a.Status)
	}
	return nil
}

// deletavel: apenas em {Rascunho, Submetido, Rejeitado}.
func deletavel(a *models.Aditivo) error {
	switch a.Status {
	case models.AditivoRascunho, models.AditivoSubmetido, models.AditivoRejeitado:
		return nil
	}
	return apperrors.Immutable("aditivo", a.ID, "status", a.Status)
}
