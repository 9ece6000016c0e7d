package certificado

import (
	"fmt"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
	"github.com/google/uuid"
)

// montarCertificado constrói o certificado de aceite para um marco totalmente
// entregue: copia o faturável corrente para valorPagamento e congela o conjunto
// de entregáveis; edições posteriores nunca alteram o snapshot.
func montarCertificado(m *models.Marco, entregaveis []models.Entregavel, codigoProjeto string) (*models.Certificado, error) {
	if len(entregaveis) == 0 {
		return nil, apperrors.InvalidTransitionMsg("certificado", 0, "gerar", m.Status,
			"marco sem entregáveis")
	}
	for _, e := range entregaveis {
		if e.Status != models.EntregavelEntregue {
			return nil, apperrors.InvalidTransitionMsg("certificado", 0, "gerar", m.Status,
				fmt.Sprintf("entregável %d ainda em '%s'", e.ID, e.Status))
		}
	}

	itens := make([]models.ItemSnapshot, 0, len(entregaveis))
	for _, e := range entregaveis {
		itens = append(itens, models.ItemSnapshot{
			EntregavelID: e.ID,
			Codigo:       e.Codigo,
			Nome:         e.Nome,
			Status:       e.Status,
		})
	}

	return &models.Certificado{
		MarcoID:        m.ID,
		Numero:         fmt.Sprintf("CERT-%s-%s", codigoProjeto, uuid.NewString()[:8]),
		ValorPagamento: m.Faturavel,
		Itens:          itens,
		Status:         models.CertificadoRascunho,
	}, nil
}

// assinar preenche um slot; reassinar o mesmo lado falha. Com os dois slots
// preenchidos o certificado fica Assinado e permanentemente imutável, e o marco
// torna-se elegível para o evento externo de faturamento.
func assinar(c *models.Certificado, lado string, assinatura models.Assinatura) error {
	if c.Status == models.CertificadoAssinado {
		return apperrors.InvalidTransition("certificado", c.ID, "assinar", c.Status)
	}
	if !c.Assinatura.Preencher(lado, assinatura) {
		return apperrors.InvalidTransitionMsg("certificado", c.ID, "assinar", c.Status,
			"lado '"+lado+"' já assinou")
	}

	switch {
	case c.Assinatura.Completa():
		c.Status = models.CertificadoAssinado
	case c.Assinatura.Fornecedor != nil:
		c.Status = models.CertificadoAguardandoCliente
	default:
		c.Status = models.CertificadoAguardandoFornecedor
	}
	return nil
}
