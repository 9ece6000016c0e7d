package aditivo

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

func NewHandler(db *gorm.DB, resolver *permissao.Resolver, reg *auditoria.Registrador, diasUteis bool) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db, diasUteis), Resolver: resolver, Auditoria: reg}
}

// POST /projetos/{id}/aditivos
func (h *Handler) CriarParaProjeto(w http.ResponseWriter, r *http.Request) {
	projetoID, _ := strconv.Atoi(mux.Vars(r)["id"])

	ator, papel, err := h.atorEPapel(r, uint(projetoID))
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpCriarAditivo); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	var dto aditivoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Titulo == "" {
		apperrors.WriteHTTP(w, apperrors.Validation("aditivo", 0, "titulo", "obrigatório"))
		return
	}

	a := models.Aditivo{
		ProjetoID: uint(projetoID),
		Codigo:    dto.Codigo,
		Titulo:    dto.Titulo,
		Descricao: dto.Descricao,
		Tipo:      dto.Tipo,
		Impactos:  dto.Impactos,
	}
	if err := h.Repository.Criar(&a); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	h.auditar(w, ator, papel, "aditivo.criar", a.ID, nil, &a)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// GET /projetos/{id}/aditivos
func (h *Handler) ListarPorProjeto(w http.ResponseWriter, r *http.Request) {
	projetoID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if _, papel, err := h.atorEPapel(r, uint(projetoID)); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	} else if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	list, err := h.Repository.ListarPorProjeto(uint(projetoID))
	if err != nil {
		http.Error(w, "Erro ao listar aditivos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /aditivos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	a, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Aditivo não encontrado", http.StatusNotFound)
		return
	}
	if _, papel, err := h.atorEPapel(r, a.ProjetoID); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	} else if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// PUT /aditivos/{id}
func (h *Handler) Editar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	a, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Aditivo não encontrado", http.StatusNotFound)
		return
	}
	antes := *a

	ator, papel, err := h.atorEPapel(r, a.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpEditarAditivo); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	var dto aditivoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	a.Codigo = dto.Codigo
	a.Titulo = dto.Titulo
	a.Descricao = dto.Descricao
	a.Tipo = dto.Tipo
	a.Impactos = dto.Impactos

	if err := h.Repository.Editar(a); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	h.auditar(w, ator, papel, "aditivo.editar", a.ID, &antes, a)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// DELETE /aditivos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	a, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Aditivo não encontrado", http.StatusNotFound)
		return
	}

	ator, papel, err := h.atorEPapel(r, a.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpExcluirAditivo); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	h.auditar(w, ator, papel, "aditivo.excluir", uint(id), a, nil)
	w.WriteHeader(http.StatusNoContent)
}

// POST /aditivos/{id}/submeter
func (h *Handler) Submeter(w http.ResponseWriter, r *http.Request) {
	h.comando(w, r, permissao.OpSubmeterAditivo, "aditivo.submeter", func(id uint, _ auth.Ator, _ string) (*models.Aditivo, error) {
		return h.Repository.Submeter(id)
	})
}

// POST /aditivos/{id}/assinar
func (h *Handler) Assinar(w http.ResponseWriter, r *http.Request) {
	var dto assinarDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)
	h.comando(w, r, permissao.OpAssinarAditivo, "aditivo.assinar", func(id uint, ator auth.Ator, papel string) (*models.Aditivo, error) {
		lado, err := permissao.LadoParaPapel(papel, dto.Lado)
		if err != nil {
			return nil, err
		}
		assinatura := models.Assinatura{UsuarioID: ator.ID, Nome: ator.Nome, Papel: papel, AssinadoEm: time.Now().UTC()}
		return h.Repository.Assinar(id, lado, assinatura)
	})
}

// POST /aditivos/{id}/rejeitar
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	var dto rejeitarDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	h.comando(w, r, permissao.OpRejeitarAditivo, "aditivo.rejeitar", func(id uint, _ auth.Ator, _ string) (*models.Aditivo, error) {
		return h.Repository.Rejeitar(id, dto.Motivo)
	})
}

// POST /aditivos/{id}/aplicar
func (h *Handler) Aplicar(w http.ResponseWriter, r *http.Request) {
	h.comando(w, r, permissao.OpAplicarAditivo, "aditivo.aplicar", func(id uint, _ auth.Ator, _ string) (*models.Aditivo, error) {
		return h.Repository.Aplicar(id)
	})
}

func (h *Handler) comando(w http.ResponseWriter, r *http.Request, op, operacaoAuditoria string, fn func(uint, auth.Ator, string) (*models.Aditivo, error)) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	a, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Aditivo não encontrado", http.StatusNotFound)
		return
	}
	antes := *a

	ator, papel, err := h.atorEPapel(r, a.ProjetoID)
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
			metrics.Conflitos.WithLabelValues("aditivo").Inc()
		}
		apperrors.WriteHTTP(w, err)
		return
	}

	metrics.Transicoes.WithLabelValues("aditivo", operacaoAuditoria).Inc()
	h.auditar(w, ator, papel, operacaoAuditoria, atualizado.ID, &antes, atualizado)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
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
		Entidade:   "aditivo",
		EntidadeID: id,
		Operacao:   operacao,
		Antes:      antes,
		Depois:     depois,
	})
	if aviso != "" {
		w.Header().Set("X-Audit-Warning", aviso)
	}
}
