package projeto

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/auth"
	"github.com/delivera/api-delivery/internal/financeiro"
	"github.com/delivera/api-delivery/internal/models"
	"github.com/delivera/api-delivery/internal/permissao"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Resolver   *permissao.Resolver
}

func NewHandler(db *gorm.DB, resolver *permissao.Resolver) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db), Resolver: resolver}
}

type criarProjetoDTO struct {
	Codigo     string `json:"codigo"`
	Nome       string `json:"nome"`
	Fornecedor string `json:"fornecedor"`
	Cliente    string `json:"cliente"`
}

type membroDTO struct {
	UsuarioID uint   `json:"usuarioId"`
	Papel     string `json:"papel"`
}

// POST /projetos (admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto criarProjetoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Nome == "" {
		apperrors.WriteHTTP(w, apperrors.Validation("projeto", 0, "nome", "obrigatório"))
		return
	}

	p := Projeto{Codigo: dto.Codigo, Nome: dto.Nome, Fornecedor: dto.Fornecedor, Cliente: dto.Cliente, Status: "Ativo"}
	if err := h.Repository.Criar(&p); err != nil {
		http.Error(w, "Erro ao criar projeto", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// GET /projetos
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarTodos()
	if err != nil {
		http.Error(w, "Erro ao listar projetos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /projetos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	papel, err := h.papelDoAtor(r, uint(id))
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Projeto não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// GET /projetos/{id}/financeiro
func (h *Handler) ResumoFinanceiro(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	papel, err := h.papelDoAtor(r, uint(id))
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	marcos, err := h.Repository.MarcosDoProjeto(uint(id))
	if err != nil {
		http.Error(w, "Erro ao buscar marcos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(financeiro.Resumir(marcos))
}

// DELETE /projetos/{id} (admin)
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir projeto", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /projetos/{id}/membros (admin)
func (h *Handler) AdicionarMembro(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var dto membroDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if !permissao.PapelValido(dto.Papel) {
		apperrors.WriteHTTP(w, apperrors.Validation("membro", 0, "papel", "papel desconhecido"))
		return
	}

	m := models.Membro{ProjetoID: uint(id), UsuarioID: dto.UsuarioID, Papel: dto.Papel}
	if err := h.Repository.SalvarMembro(&m); err != nil {
		http.Error(w, "Erro ao adicionar membro", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(m)
}

// GET /projetos/{id}/membros
func (h *Handler) ListarMembros(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	papel, err := h.papelDoAtor(r, uint(id))
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpLerProjeto); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	membros, err := h.Repository.ListarMembros(uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar membros", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(membros)
}

// DELETE /projetos/{id}/membros/{mid} (admin)
func (h *Handler) RemoverMembro(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, _ := strconv.Atoi(vars["id"])
	mid, _ := strconv.Atoi(vars["mid"])
	if err := h.Repository.RemoverMembro(uint(id), uint(mid)); err != nil {
		http.Error(w, "Erro ao remover membro", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) papelDoAtor(r *http.Request, projetoID uint) (string, error) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		return "", apperrors.Denied("", permissao.OpLerProjeto)
	}
	return h.Resolver.Papel(ator.ID, projetoID, ator.IsAdmin)
}
