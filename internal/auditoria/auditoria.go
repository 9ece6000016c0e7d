package auditoria

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Evento é o registro emitido após cada transição bem-sucedida: quem fez o quê,
// com qual papel, sobre qual entidade, com snapshot antes/depois.
type Evento struct {
	ID         string      `json:"id"`
	AtorID     uint        `json:"atorId"`
	Papel      string      `json:"papel"`
	Entidade   string      `json:"entidade"`
	EntidadeID uint        `json:"entidadeId"`
	Operacao   string      `json:"operacao"`
	Antes      interface{} `json:"antes,omitempty"`
	Depois     interface{} `json:"depois,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Sink recebe eventos de auditoria de forma fire-and-forget.
type Sink interface {
	Emitir(Evento) error
}

// Registrador distribui o evento para os sinks configurados depois do commit.
// Falha de auditoria nunca desfaz a transação de negócio; ela volta ao chamador
// como aviso distinto.
type Registrador struct {
	Sinks  []Sink
	Logger *zap.Logger
}

func NewRegistrador(logger *zap.Logger, sinks ...Sink) *Registrador {
	return &Registrador{Sinks: sinks, Logger: logger}
}

// Registrar preenche id/timestamp, emite para todos os sinks e retorna uma
// mensagem de aviso quando algum sink falhou ("" quando tudo foi gravado).
func (r *Registrador) Registrar(e Evento) string {
	e.ID = uuid.NewString()
	e.Timestamp = time.Now().UTC()

	aviso := ""
	for _, s := range r.Sinks {
		if err := s.Emitir(e); err != nil {
			aviso = "falha ao gravar auditoria: " + err.Error()
			if r.Logger != nil {
				r.Logger.Warn("falha no sink de auditoria",
					zap.String("entidade", e.Entidade),
					zap.Uint("entidadeId", e.EntidadeID),
					zap.String("operacao", e.Operacao),
					zap.Error(err),
				)
			}
		}
	}
	return aviso
}
