package certificado

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

type assinarDTO struct {
	Lado string `json:"lado"`
}

// POST /marcos/{id}/certificado
func (h *Handler) GerarParaMarco(w http.ResponseWriter, r *http.Request) {
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
	if err := permissao.Exigir(papel, permissao.OpGerarCertificado); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	c, err := h.Repository.Gerar(uint(marcoID))
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	metrics.Transicoes.WithLabelValues("certificado", "gerar").Inc()
	h.auditar(w, ator, papel, "certificado.gerar", c.ID, nil, c)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /marcos/{id}/certificado
func (h *Handler) BuscarPorMarco(w http.ResponseWriter, r *http.Request) {
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

	c, err := h.Repository.BuscarPorMarco(uint(marcoID))
	if err != nil {
		http.Error(w, "Certificado não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// POST /certificados/{id}/assinar
func (h *Handler) Assinar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Certificado não encontrado", http.StatusNotFound)
		return
	}
	antes := *c

	var m models.Marco
	if err := h.DB.First(&m, c.MarcoID).Error; err != nil {
		http.Error(w, "Marco não encontrado", http.StatusNotFound)
		return
	}

	ator, papel, err := h.atorEPapel(r, m.ProjetoID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}
	if err := permissao.Exigir(papel, permissao.OpAssinarCertificado); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	var dto assinarDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)
	lado, err := permissao.LadoParaPapel(papel, dto.Lado)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	assinatura := models.Assinatura{UsuarioID: ator.ID, Nome: ator.Nome, Papel: papel, AssinadoEm: time.Now().UTC()}
	atualizado, err := h.Repository.Assinar(uint(id), lado, assinatura)
	if err != nil {
		if apperrors.IsConflict(err) {
			metrics.Conflitos.WithLabelValues("certificado").Inc()
		}
		apperrors.WriteHTTP(w, err)
		return
	}

	metrics.Transicoes.WithLabelValues("certificado", "assinar").Inc()
	h.auditar(w, ator, papel, "certificado.assinar", atualizado.ID, &antes, atualizado)
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
		Entidade:   "certificado",
		EntidadeID: id,
		Operacao:   operacao,
		Antes:      antes,
		Depois:     depois,
	})
	if aviso != "" {
		w.Header().Set("X-Audit-Warning", aviso)
	}
}
