package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateAndParse(t *testing.T) {
	SetSecret("segredo-de-teste")

	tok, err := GenerateAccessToken(42, "Ana", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ParseAndValidate(tok)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.UserID != 42 || claims.Nome != "Ana" || !claims.IsAdmin {
		t.Fatalf("claims incorretas: %+v", claims)
	}
}

func TestParseSecretErrado(t *testing.T) {
	SetSecret("segredo-a")
	tok, err := GenerateAccessToken(1, "Ana", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	SetSecret("segredo-b")
	if _, err := ParseAndValidate(tok); err == nil {
		t.Fatal("token assinado com outro segredo deveria falhar")
	}
}

func TestMiddlewareAutenticacao(t *testing.T) {
	SetSecret("segredo-de-teste")

	var visto Ator
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto, _ = AtorDoContexto(r.Context())
	})
	handler := MiddlewareAutenticacao(next)

	// sem token
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/projetos", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("sem token: status = %d, esperado 401", rec.Code)
	}

	// com token válido
	tok, err := GenerateAccessToken(7, "Bruno", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	req := httptest.NewRequest("GET", "/projetos", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("com token: status = %d, esperado 200", rec.Code)
	}
	if visto.ID != 7 || visto.Nome != "Bruno" || visto.IsAdmin {
		t.Fatalf("ator extraído incorreto: %+v", visto)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RequireAdmin(next)

	req := httptest.NewRequest("POST", "/usuarios", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("sem admin: status = %d, esperado 403", rec.Code)
	}

	ctx := context.WithValue(req.Context(), CtxIsAdmin, true)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: status = %d, esperado 200", rec.Code)
	}
}
