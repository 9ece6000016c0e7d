package entregavel

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/auditoria"
	"github.com/delivera/api-delivery/internal/auth"
	"github.com/delivera/api-delivery/internal/metrics"
	"github.com/delivera/api-delivery/internal/models"
	"github.com/delivera/api-delivery/internal/permissao"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Resolver   *permissao.Resolver
	Auditoria  *auditoria.Registrador
}

func NewHandler(db *gorm.DB, resolver *permissao.Resolver, reg *auditoria.Registrador) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db), Resolver: resolver, Auditoria: reg}
}

// POST /marcos/{id}/entregaveis
func (h *Handler) CriarParaMarco(w http.ResponseWriter, r *http.Request) {
	marcoID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var m models.Marco
	if err := h.DB.First(&m, marcoID).Error; err != nil {
		http.Error(w, "Marco não encontrado", http.StatusNotFound)
		return
	}

	ator, papel, err := h.atorEPapel(r, m.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpCriarEntregavel); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	var dto entregavelCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Nome == "" {
		apperrors.WriteHTTP(w, apperrors.Validation("entregavel", 0, "nome", "obrigatório"))
		return
	}
	if dto.Indicadores == nil {
		dto.Indicadores = []string{}
	}

	e := models.Entregavel{
		MarcoID:     uint(marcoID),
		Codigo:      dto.Codigo,
		Nome:        dto.Nome,
		Descricao:   dto.Descricao,
		Indicadores: dto.Indicadores,
	}
	if err := h.Repository.Criar(&e); err != nil {
		http.Error(w, "Erro ao criar entregável", http.StatusInternalServerError)
		return
	}

	h.auditar(w, ator, papel, "entregavel.criar", e.ID, nil, &e)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(e)
}

// GET /marcos/{id}/entregaveis
func (h *Handler) ListarPorMarco(w http.ResponseWriter, r *http.Request) {
	marcoID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var m models.Marco
	if err := h.DB.First(&m, marcoID).Error; err != nil {
		http.Error(w, "Marco não encontrado", http.StatusNotFound)
		return
	}
	if _, papel, err := h.atorEPapel(r, m.ProjetoID); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	} else if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	list, err := h.Repository.ListarPorMarco(uint(marcoID))
	if err != nil {
		http.Error(w, "Erro ao listar entregáveis", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /entregaveis/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	e, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Entregável não encontrado", http.StatusNotFound)
		return
	}
	if _, papel, err := h.papelPorEntregavel(r, e); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	} else if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(e)
}

// PUT /entregaveis/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	e, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Entregável não encontrado", http.StatusNotFound)
		return
	}
	antes := *e

	ator, papel, err := h.papelPorEntregavel(r, e)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpAtualizarEntregavel); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	var dto entregavelUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Status != nil {
		apperrors.WriteHTTP(w, apperrors.Validation("entregavel", e.ID, "status", "transições só por comando explícito"))
		return
	}
	if dto.Progresso != nil {
		apperrors.WriteHTTP(w, apperrors.Validation("entregavel", e.ID, "progresso", "use o comando de progresso"))
		return
	}
	if e.Terminal() {
		apperrors.WriteHTTP(w, apperrors.Immutable("entregavel", e.ID, "nome", e.Status))
		return
	}

	if dto.Codigo != nil {
		e.Codigo = *dto.Codigo
	}
	if dto.Nome != nil {
		e.Nome = *dto.Nome
	}
	if dto.Descricao != nil {
		e.Descricao = *dto.Descricao
	}
	if dto.Indicadores != nil {
		e.Indicadores = *dto.Indicadores
	}

	if err := h.Repository.AtualizarMeta(e); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	h.auditar(w, ator, papel, "entregavel.atualizar", e.ID, &antes, e)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(e)
}

// DELETE /entregaveis/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	e, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Entregável não encontrado", http.StatusNotFound)
		return
	}

	ator, papel, err := h.papelPorEntregavel(r, e)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpExcluirEntregavel); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	h.auditar(w, ator, papel, "entregavel.excluir", uint(id), e, nil)
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /entregaveis/{id}/progresso
func (h *Handler) AplicarProgresso(w http.ResponseWriter, r *http.Request) {
	var dto progressoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	h.comando(w, r, permissao.OpProgressoEntregavel, "entregavel.progresso", func(id uint, _ auth.Ator, _ string) (*models.Entregavel, error) {
		return h.Repository.AplicarProgresso(id, dto.Progresso)
	})
}

// POST /entregaveis/{id}/submeter-revisao
func (h *Handler) SubmeterRevisao(w http.ResponseWriter, r *http.Request) {
	h.comando(w, r, permissao.OpSubmeterRevisao, "entregavel.submeter-revisao", func(id uint, _ auth.Ator, _ string) (*models.Entregavel, error) {
		return h.Repository.SubmeterRevisao(id)
	})
}

// POST /entregaveis/{id}/aceitar-revisao
func (h *Handler) AceitarRevisao(w http.ResponseWriter, r *http.Request) {
	h.comando(w, r, permissao.OpAceitarRevisao, "entregavel.aceitar-revisao", func(id uint, _ auth.Ator, _ string) (*models.Entregavel, error) {
		return h.Repository.AceitarRevisao(id)
	})
}

// POST /entregaveis/{id}/retornar
func (h *Handler) RetornarParaAjustes(w http.ResponseWriter, r *http.Request) {
	var dto retornarDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	h.comando(w, r, permissao.OpRetornarEntregavel, "entregavel.retornar", func(id uint, _ auth.Ator, _ string) (*models.Entregavel, error) {
		return h.Repository.RetornarParaAjustes(id, dto.Motivo)
	})
}

// POST /entregaveis/{id}/assinar-entrega
func (h *Handler) AssinarEntrega(w http.ResponseWriter, r *http.Request) {
	var dto assinarDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)
	h.comando(w, r, permissao.OpAssinarEntrega, "entregavel.assinar-entrega", func(id uint, ator auth.Ator, papel string) (*models.Entregavel, error) {
		lado, err := permissao.LadoParaPapel(papel, dto.Lado)
		if err != nil {
			return nil, err
		}
		assinatura := models.Assinatura{UsuarioID: ator.ID, Nome: ator.Nome, Papel: papel, AssinadoEm: time.Now().UTC()}
		return h.Repository.AssinarEntrega(id, lado, assinatura)
	})
}

// comando é o esqueleto compartilhado das transições: resolve papel, checa a
// tabela de capacidades, executa a mutação condicional e audita.
func (h *Handler) comando(w http.ResponseWriter, r *http.Request, op, operacaoAuditoria string, fn func(uint, auth.Ator, string) (*models.Entregavel, error)) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	e, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Entregável não encontrado", http.StatusNotFound)
		return
	}
	antes := *e

	ator, papel, err := h.papelPorEntregavel(r, e)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, op); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	atualizado, err := fn(uint(id), ator, papel)
	if err != nil {
		if apperrors.IsConflict(err) {
			metrics.Conflitos.WithLabelValues("entregavel").Inc()
		}
		apperrors.WriteHTTP(w, err)
		return
	}

	metrics.Transicoes.WithLabelValues("entregavel", operacaoAuditoria).Inc()
	h.auditar(w, ator, papel, operacaoAuditoria, atualizado.ID, &antes, atualizado)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

func (h *Handler) papelPorEntregavel(r *http.Request, e *models.Entregavel) (auth.Ator, string, error) {
	var m models.Marco
	if err := h.DB.First(&m, e.MarcoID).Error; err != nil {
		return auth.Ator{}, "", err
	}
	return h.atorEPapel(r, m.ProjetoID)
}

func (h *Handler) atorEPapel(r *http.Request, projetoID uint) (auth.Ator, string, error) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		return auth.Ator{}, "", apperrors.Denied("", "autenticação")
	}
	papel, err := h.Resolver.Papel(ator.ID, projetoID, ator.IsAdmin)
	if err != nil {
		return ator, "", err
	}
	return ator, papel, nil
}

func (h *Handler) auditar(w http.ResponseWriter, ator auth.Ator, papel, operacao string, id uint, antes, depois interface{}) {
	aviso := h.Auditoria.Registrar(auditoria.Evento{
		AtorID:     ator.ID,
		Papel:      papel,
		Entidade:   "entregavel",
		EntidadeID: id,
		Operacao:   operacao,
		Antes:      antes,
		Depois:     depois,
	})
	if aviso != "" {
		w.Header().Set("X-Audit-Warning", aviso)
	}
}
