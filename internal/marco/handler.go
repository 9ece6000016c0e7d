package marco

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

// POST /projetos/{id}/marcos
func (h *Handler) CriarParaProjeto(w http.ResponseWriter, r *http.Request) {
	projetoID, _ := strconv.Atoi(mux.Vars(r)["id"])

	ator, papel, err := h.atorEPapel(r, uint(projetoID))
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpCriarMarco); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	var dto marcoCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Nome == "" {
		apperrors.WriteHTTP(w, apperrors.Validation("marco", 0, "nome", "obrigatório"))
		return
	}

	m := models.Marco{
		ProjetoID:         uint(projetoID),
		Codigo:            dto.Codigo,
		Nome:              dto.Nome,
		BaselineInicio:    dto.BaselineInicio,
		BaselineFim:       dto.BaselineFim,
		BaselineFaturavel: dto.BaselineFaturavel,
		PrevistoInicio:    dto.PrevistoInicio,
		PrevistoFim:       dto.PrevistoFim,
		PrevistoFaturavel: dto.PrevistoFaturavel,
		Faturavel:         dto.Faturavel,
	}
	if err := h.Repository.Criar(&m); err != nil {
		http.Error(w, "Erro ao criar marco", http.StatusInternalServerError)
		return
	}

	h.auditar(w, ator, papel, "marco.criar", m.ID, nil, &m)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(m)
}

// GET /projetos/{id}/marcos
func (h *Handler) ListarPorProjeto(w http.ResponseWriter, r *http.Request) {
	projetoID, _ := strconv.Atoi(mux.Vars(r)["id"])

	_, papel, err := h.atorEPapel(r, uint(projetoID))
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	list, err := h.Repository.ListarPorProjeto(uint(projetoID))
	if err != nil {
		http.Error(w, "Erro ao listar marcos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /marcos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	m, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Marco não encontrado", http.StatusNotFound)
		return
	}

	_, papel, err := h.atorEPapel(r, m.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

// PUT /marcos/{id}
// Previsto e realizado são revisáveis; baseline só muda aqui enquanto não
// travada. Status e progresso são derivados e rejeitados como entrada.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	m, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Marco não encontrado", http.StatusNotFound)
		return
	}
	antes := *m

	ator, papel, err := h.atorEPapel(r, m.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpAtualizarMarco); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	var dto marcoUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	campos, err := dto.aplicar(m)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	if len(campos) == 0 {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(m)
		return
	}

	if err := h.Repository.Atualizar(m, campos); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	h.auditar(w, ator, papel, "marco.atualizar", m.ID, &antes, m)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

// DELETE /marcos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	m, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Marco não encontrado", http.StatusNotFound)
		return
	}

	ator, papel, err := h.atorEPapel(r, m.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpExcluirMarco); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir marco", http.StatusInternalServerError)
		return
	}

	h.auditar(w, ator, papel, "marco.excluir", uint(id), m, nil)
	w.WriteHeader(http.StatusNoContent)
}

// POST /marcos/{id}/baseline/assinar
func (h *Handler) AssinarBaseline(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	m, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Marco não encontrado", http.StatusNotFound)
		return
	}
	antes := *m

	ator, papel, err := h.atorEPapel(r, m.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpAssinarBaseline); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	var dto assinarDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)
	lado, err := permissao.LadoBaselineParaPapel(papel, dto.Lado)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	assinatura := models.Assinatura{UsuarioID: ator.ID, Nome: ator.Nome, Papel: papel, AssinadoEm: time.Now().UTC()}
	atualizado, err := h.Repository.AssinarBaseline(uint(id), lado, assinatura)
	if err != nil {
		if apperrors.IsConflict(err) {
			metrics.Conflitos.WithLabelValues("marco").Inc()
		}
		apperrors.WriteHTTP(w, err)
		return
	}

	metrics.Transicoes.WithLabelValues("marco", "baseline.assinar").Inc()
	h.auditar(w, ator, papel, "baseline.assinar", atualizado.ID, &antes, atualizado)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// POST /marcos/{id}/baseline/reset (admin)
func (h *Handler) ResetarBaseline(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	m, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Marco não encontrado", http.StatusNotFound)
		return
	}
	antes := *m

	ator, papel, err := h.atorEPapel(r, m.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpResetarBaseline); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	atualizado, err := h.Repository.ResetarBaseline(uint(id))
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	metrics.Transicoes.WithLabelValues("marco", "baseline.resetar").Inc()
	h.auditar(w, ator, papel, "baseline.resetar", atualizado.ID, &antes, atualizado)
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

// auditar emite o evento pós-commit; falha vira aviso no header, nunca rollback.
func (h *Handler) auditar(w http.ResponseWriter, ator auth.Ator, papel, operacao string, id uint, antes, depois interface{}) {
	aviso := h.Auditoria.Registrar(auditoria.Evento{
		AtorID:     ator.ID,
		Papel:      papel,
		Entidade:   "marco",
		EntidadeID: id,
		Operacao:   operacao,
		Antes:      antes,
		Depois:     depois,
	})
	if aviso != "" {
		w.Header().Set("X-Audit-Warning", aviso)
	}
}
