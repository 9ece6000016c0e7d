package entregavel

import (
	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
)

// Máquina de estados do entregável. As funções mudam a struct em memória; o
// repositório relê o estado persistido imediatamente antes de gravar, com
// guarda condicional, para nunca agir sobre dado defasado.

// aplicarProgresso é o único lugar onde escrita de campo muda status
// implicitamente: de Não Iniciado, valor > 0 leva a Em Andamento; de Em
// Andamento, valor == 0 volta a Não Iniciado. Todas as demais transições são
// comandos explícitos.
func aplicarProgresso(e *models.Entregavel, valor int) error {
	if valor < 0 || valor > 100 {
		return apperrors.Validation("entregavel", e.ID, "progresso", "deve estar entre 0 e 100")
	}
	if e.Status == models.EntregavelEntregue {
		return apperrors.InvalidTransition("entregavel", e.ID, "progresso", e.Status)
	}

	e.Progresso = valor
	switch {
	case e.Status == models.EntregavelNaoIniciado && valor > 0:
		e.Status = models.EntregavelEmAndamento
	case e.Status == models.EntregavelEmAndamento && valor == 0:
		e.Status = models.EntregavelNaoIniciado
	}
	return nil
}

func submeterRevisao(e *models.Entregavel) error {
	if e.Status != models.EntregavelEmAndamento && e.Status != models.EntregavelRetornado {
		return apperrors.InvalidTransition("entregavel", e.ID, "submeter-revisao", e.Status)
	}
	e.Status = models.EntregavelEmRevisao
	return nil
}

func aceitarRevisao(e *models.Entregavel) error {
	if e.Status != models.EntregavelEmRevisao {
		return apperrors.InvalidTransition("entregavel", e.ID, "aceitar-revisao", e.Status)
	}
	e.Status = models.EntregavelRevisaoConcluida
	return nil
}

func retornarParaAjustes(e *models.Entregavel, motivo string) error {
	if e.Status != models.EntregavelEmRevisao {
		return apperrors.InvalidTransition("entregavel", e.ID, "retornar", e.Status)
	}
	if motivo == "" {
		return apperrors.Validation("entregavel", e.ID, "motivo", "obrigatório ao retornar para ajustes")
	}
	e.Status = models.EntregavelRetornado
	e.MotivoRetorno = motivo
	return nil
}

// assinarEntrega preenche o slot do lado informado; reassinar o mesmo lado é
// no-op (nunca indefinido, para o escritor perdedor poder reler e repetir).
// Com os dois slots preenchidos, progresso vai a 100 e o status a Entregue
// atomicamente.
func assinarEntrega(e *models.Entregavel, lado string, assinatura models.Assinatura) (noop bool, err error) {
	if e.Status != models.EntregavelRevisaoConcluida {
		return false, apperrors.InvalidTransition("entregavel", e.ID, "assinar-entrega", e.Status)
	}
	if !e.AssinaturaEntrega.Preencher(lado, assinatura) {
		return true, nil
	}
	if e.AssinaturaEntrega.Completa() {
		e.Progresso = 100
		e.Status = models.EntregavelEntregue
	}
	return false, nil
}
