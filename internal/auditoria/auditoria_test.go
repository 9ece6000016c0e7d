package auditoria

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

type sinkMemoria struct {
	eventos []Evento
	falha   error
}

func (s *sinkMemoria) Emitir(e Evento) error {
	if s.falha != nil {
		return s.falha
	}
	s.eventos = append(s.eventos, e)
	return nil
}

func TestRegistrarPreencheIDETimestamp(t *testing.T) {
	mem := &sinkMemoria{}
	r := NewRegistrador(zap.NewNop(), mem)

	aviso := r.Registrar(Evento{AtorID: 1, Papel: "fornecedor", Entidade: "marco", EntidadeID: 5, Operacao: "baseline.assinar"})
	if aviso != "" {
		t.Fatalf("aviso inesperado: %q", aviso)
	}
	if len(mem.eventos) != 1 {
		t.Fatalf("eventos gravados = %d, esperado 1", len(mem.eventos))
	}
	e := mem.eventos[0]
	if e.ID == "" || e.Timestamp.IsZero() {
		t.Fatalf("id/timestamp não preenchidos: %+v", e)
	}
	if e.Entidade != "marco" || e.Operacao != "baseline.assinar" {
		t.Fatalf("evento incorreto: %+v", e)
	}
}

func TestRegistrarSinkComFalha(t *testing.T) {
	quebrado := &sinkMemoria{falha: errors.New("broker fora do ar")}
	ok := &sinkMemoria{}
	r := NewRegistrador(zap.NewNop(), quebrado, ok)

	aviso := r.Registrar(Evento{Entidade: "aditivo", Operacao: "aplicar"})
	if aviso == "" {
		t.Fatal("falha de sink deveria produzir aviso")
	}
	// os demais sinks continuam recebendo o evento
	if len(ok.eventos) != 1 {
		t.Fatalf("sink saudável gravou %d eventos, esperado 1", len(ok.eventos))
	}
}
