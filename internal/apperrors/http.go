package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

type errorBody struct {
	Erro     string `json:"erro"`
	Tipo     string `json:"tipo"`
	Entidade string `json:"entidade,omitempty"`
	ID       uint   `json:"id,omitempty"`
	Campo    string `json:"campo,omitempty"`
	Estado   string `json:"estado,omitempty"`
}

// WriteHTTP traduz o erro tipado para o status HTTP correspondente e escreve o
// corpo JSON com entidade, campo e estado atual para mensagens precisas.
func WriteHTTP(w http.ResponseWriter, err error) {
	body := errorBody{Erro: err.Error()}
	status := http.StatusInternalServerError

	var ve *ValidationError
	var pd *PermissionDenied
	var ist *InvalidStateTransition
	var ife *ImmutableFieldError
	var ce *ConflictError
	var nf *NotFoundError

	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		body.Tipo = "ValidationError"
		body.Entidade, body.ID, body.Campo = ve.Entity, ve.ID, ve.Field
	case errors.As(err, &pd):
		status = http.StatusForbidden
		body.Tipo = "PermissionDenied"
	case errors.As(err, &ist):
		status = http.StatusUnprocessableEntity
		body.Tipo = "InvalidStateTransition"
		body.Entidade, body.ID, body.Estado = ist.Entity, ist.ID, ist.State
	case errors.As(err, &ife):
		status = http.StatusUnprocessableEntity
		body.Tipo = "ImmutableFieldError"
		body.Entidade, body.ID, body.Campo, body.Estado = ife.Entity, ife.ID, ife.Field, ife.State
	case errors.As(err, &ce):
		status = http.StatusConflict
		body.Tipo = "ConflictError"
		body.Entidade, body.ID, body.Estado = ce.Entity, ce.ID, ce.State
	case errors.As(err, &nf), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
		body.Tipo = "NotFoundError"
		if nf != nil {
			body.Entidade, body.ID = nf.Entity, nf.ID
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
