package certificado

import (
	"errors"
	"testing"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestTraduzirDuplicado(t *testing.T) {
	// dois geradores concorrentes: o perdedor bate no índice único de
	// marco_id e precisa receber ConflictError, não erro cru do banco
	if err := traduzirDuplicado(gorm.ErrDuplicatedKey, 9); !apperrors.IsConflict(err) {
		t.Fatalf("chave duplicada do gorm: erro = %v, esperado ConflictError", err)
	}

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_certificados_marco_id"}
	if err := traduzirDuplicado(pgErr, 9); !apperrors.IsConflict(err) {
		t.Fatalf("unique_violation do postgres: erro = %v, esperado ConflictError", err)
	}

	// qualquer outro erro passa intocado
	outro := errors.New("conexão perdida")
	if err := traduzirDuplicado(outro, 9); !errors.Is(err, outro) {
		t.Fatalf("erro genérico foi traduzido indevidamente: %v", err)
	}
}
