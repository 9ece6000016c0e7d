package usuario

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/delivera/api-delivery/internal/auth"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db)}
}

type criarUsuarioDTO struct {
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Senha   string `json:"senha"`
	IsAdmin bool   `json:"isAdmin"`
}

type loginDTO struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResposta struct {
	Token   string `json:"token"`
	UserID  uint   `json:"userId"`
	Nome    string `json:"nome"`
	IsAdmin bool   `json:"isAdmin"`
}

// POST /usuarios (admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto criarUsuarioDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	dto.Email = strings.TrimSpace(strings.ToLower(dto.Email))
	if dto.Email == "" || dto.Senha == "" {
		http.Error(w, "email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := hashSenha(dto.Senha)
	if err != nil {
		http.Error(w, "Erro ao gerar hash da senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{Nome: dto.Nome, Email: dto.Email, Senha: hash, IsAdmin: dto.IsAdmin}
	if err := h.Repository.Criar(&u); err != nil {
		http.Error(w, "Erro ao criar usuário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto loginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorEmail(strings.TrimSpace(strings.ToLower(dto.Email)))
	if err != nil || !verificarSenha(u.Senha, dto.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAccessToken(u.ID, u.Nome, u.IsAdmin)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResposta{Token: token, UserID: u.ID, Nome: u.Nome, IsAdmin: u.IsAdmin})
}
