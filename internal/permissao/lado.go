package permissao

import (
	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
)

// LadoParaPapel decide qual slot da dupla assinatura o ator preenche.
// Fornecedor assina o lado fornecedor, cliente o lado cliente; admin assina
// pelo fornecedor por padrão, podendo indicar o lado explicitamente.
func LadoParaPapel(papel, ladoExplicito string) (string, error) {
	switch papel {
	case PapelFornecedor:
		if ladoExplicito != "" && ladoExplicito != models.LadoFornecedor {
			return "", apperrors.Denied(papel, "assinar pelo lado "+ladoExplicito)
		}
		return models.LadoFornecedor, nil
	case PapelCliente:
		if ladoExplicito != "" && ladoExplicito != models.LadoCliente {
			return "", apperrors.Denied(papel, "assinar pelo lado "+ladoExplicito)
		}
		return models.LadoCliente, nil
	case PapelAdmin:
		if ladoExplicito == models.LadoCliente {
			return models.LadoCliente, nil
		}
		return models.LadoFornecedor, nil
	}
	return "", apperrors.Denied(papel, "assinatura")
}

// LadoBaselineParaPapel decide o slot no firmamento da linha de base. Aqui o
// slot cliente exige o papel cliente: o compromisso é de duas partes e nem
// admin assina pela contraparte.
func LadoBaselineParaPapel(papel, ladoExplicito string) (string, error) {
	if papel == PapelAdmin && ladoExplicito == models.LadoCliente {
		return "", apperrors.Denied(papel, "assinar a baseline pelo lado cliente")
	}
	return LadoParaPapel(papel, ladoExplicito)
}
