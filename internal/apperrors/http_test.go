package apperrors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteHTTPStatus(t *testing.T) {
	casos := []struct {
		err  error
		quer int
		tipo string
	}{
		{Validation("entregavel", 1, "progresso", "fora de faixa"), http.StatusBadRequest, "ValidationError"},
		{Denied("visualizador", "marco.criar"), http.StatusForbidden, "PermissionDenied"},
		{InvalidTransition("entregavel", 1, "assinar-entrega", "Em Revisão"), http.StatusUnprocessableEntity, "InvalidStateTransition"},
		{Immutable("marco", 2, "baselineFim", "Firmada"), http.StatusUnprocessableEntity, "ImmutableFieldError"},
		{Conflict("marco", 2, "Aguardando Contraparte"), http.StatusConflict, "ConflictError"},
		{NotFound("certificado", 3), http.StatusNotFound, "NotFoundError"},
	}
	for _, c := range casos {
		rec := httptest.NewRecorder()
		WriteHTTP(rec, c.err)

		if rec.Code != c.quer {
			t.Fatalf("%T: status = %d, esperado %d", c.err, rec.Code, c.quer)
		}
		var body struct {
			Erro string `json:"erro"`
			Tipo string `json:"tipo"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%T: corpo inválido: %v", c.err, err)
		}
		if body.Tipo != c.tipo {
			t.Fatalf("%T: tipo = %q, esperado %q", c.err, body.Tipo, c.tipo)
		}
		if body.Erro == "" {
			t.Fatalf("%T: mensagem vazia", c.err)
		}
	}
}

func TestIsConflict(t *testing.T) {
	if !IsConflict(Conflict("marco", 1, "Firmada")) {
		t.Fatal("ConflictError deveria ser retryável")
	}
	if IsConflict(NotFound("marco", 1)) {
		t.Fatal("NotFoundError não é retryável")
	}
}
