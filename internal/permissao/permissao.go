package permissao

import "github.com/delivera/api-delivery/internal/apperrors"

// Papéis com escopo de projeto (conjunto fechado).
const (
	PapelAdmin        = "admin"
	PapelFornecedor   = "fornecedor"
	PapelCliente      = "cliente"
	PapelColaborador  = "colaborador"
	PapelVisualizador = "visualizador"
)

// Operações do motor. Cada comando externo passa pela tabela antes de tocar
// qualquer máquina de estados.
const (
	OpLerProjeto     = "projeto.ler"
	OpCriarProjeto   = "projeto.criar"
	OpExcluirProjeto = "projeto.excluir"
	OpGerirMembros   = "projeto.membros"

	OpCriarMarco     = "marco.criar"
	OpAtualizarMarco = "marco.atualizar"
	OpExcluirMarco   = "marco.excluir"

	OpAssinarBaseline = "baseline.assinar"
	OpResetarBaseline = "baseline.resetar"

	OpCriarEntregavel     = "entregavel.criar"
	OpAtualizarEntregavel = "entregavel.atualizar"
	OpExcluirEntregavel   = "entregavel.excluir"
	OpProgressoEntregavel = "entregavel.progresso"
	OpSubmeterRevisao     = "entregavel.submeter-revisao"
	OpAceitarRevisao      = "entregavel.aceitar-revisao"
	OpRetornarEntregavel  = "entregavel.retornar"
	OpAssinarEntrega      = "entregavel.assinar-entrega"

	OpGerarCertificado   = "certificado.gerar"
	OpAssinarCertificado = "certificado.assinar"

	OpCriarAditivo    = "aditivo.criar"
	OpEditarAditivo   = "aditivo.editar"
	OpSubmeterAditivo = "aditivo.submeter"
	OpAssinarAditivo  = "aditivo.assinar"
	OpRejeitarAditivo = "aditivo.rejeitar"
	OpAplicarAditivo  = "aditivo.aplicar"
	OpExcluirAditivo  = "aditivo.excluir"
)

// tabela estática {papel, operação} -> permitido. O artefato é testável
// diretamente; nenhum handler ramifica por papel fora daqui.
var tabela = map[string]map[string]bool{
	OpLerProjeto: {PapelAdmin: true, PapelFornecedor: true, PapelCliente: true, PapelColaborador: true, PapelVisualizador: true},

	OpCriarProjeto:   {PapelAdmin: true},
	OpExcluirProjeto: {PapelAdmin: true},
	OpGerirMembros:   {PapelAdmin: true},

	OpCriarMarco:     {PapelAdmin: true, PapelFornecedor: true},
	OpAtualizarMarco: {PapelAdmin: true, PapelFornecedor: true},
	OpExcluirMarco:   {PapelAdmin: true, PapelFornecedor: true},

	OpAssinarBaseline: {PapelAdmin: true, PapelFornecedor: true, PapelCliente: true},
	OpResetarBaseline: {PapelAdmin: true},

	OpCriarEntregavel:     {PapelAdmin: true, PapelFornecedor: true},
	OpAtualizarEntregavel: {PapelAdmin: true, PapelFornecedor: true},
	OpExcluirEntregavel:   {PapelAdmin: true, PapelFornecedor: true},
	OpProgressoEntregavel: {PapelAdmin: true, PapelFornecedor: true, PapelColaborador: true},
	OpSubmeterRevisao:     {PapelAdmin: true, PapelFornecedor: true},
	OpAceitarRevisao:      {PapelAdmin: true, PapelCliente: true},
	OpRetornarEntregavel:  {PapelAdmin: true, PapelCliente: true},
	OpAssinarEntrega:      {PapelAdmin: true, PapelFornecedor: true, PapelCliente: true},

	OpGerarCertificado:   {PapelAdmin: true, PapelFornecedor: true},
	OpAssinarCertificado: {PapelAdmin: true, PapelFornecedor: true, PapelCliente: true},

	OpCriarAditivo:    {PapelAdmin: true, PapelFornecedor: true},
	OpEditarAditivo:   {PapelAdmin: true, PapelFornecedor: true},
	OpSubmeterAditivo: {PapelAdmin: true, PapelFornecedor: true},
	OpAssinarAditivo:  {PapelAdmin: true, PapelFornecedor: true, PapelCliente: true},
	OpRejeitarAditivo: {PapelAdmin: true, PapelFornecedor: true, PapelCliente: true},
	OpAplicarAditivo:  {PapelAdmin: true, PapelFornecedor: true},
	OpExcluirAditivo:  {PapelAdmin: true, PapelFornecedor: true},
}

// Permitido consulta a tabela de capacidades.
func Permitido(papel, operacao string) bool {
	ops, ok := tabela[operacao]
	if !ok {
		return false
	}
	return ops[papel]
}

// Exigir retorna PermissionDenied quando o papel não cobre a operação.
func Exigir(papel, operacao string) error {
	if !Permitido(papel, operacao) {
		return apperrors.Denied(papel, operacao)
	}
	return nil
}
