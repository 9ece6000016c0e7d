package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados do entregável.
const (
	EntregavelNaoIniciado      = "Não Iniciado"
	EntregavelEmAndamento      = "Em Andamento"
	EntregavelEmRevisao        = "Em Revisão"
	EntregavelRetornado        = "Retornado para Ajustes"
	EntregavelRevisaoConcluida = "Revisão Concluída"
	EntregavelEntregue         = "Entregue"
)

// Entregavel pertence a exatamente um marco (cascata na exclusão do marco).
// Invariante: status "Entregue" implica progresso 100 e dupla assinatura completa.
type Entregavel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	MarcoID   uint   `gorm:"not null;index" json:"marcoId"`
	Codigo    string `gorm:"size:50" json:"codigo"`
	Nome      string `gorm:"size:255;not null" json:"nome"`
	Descricao string `json:"descricao"`

	Progresso int    `gorm:"not null;default:0" json:"progresso"`
	Status    string `gorm:"size:50;not null;default:'Não Iniciado';index" json:"status"`

	// Conjunto (sem ordem) de referências a KPIs / padrões de qualidade.
	Indicadores []string `gorm:"type:jsonb;serializer:json" json:"indicadores"`

	// Motivo registrado no último retorno para ajustes.
	MotivoRetorno string `json:"motivoRetorno"`

	// Assinatura de entrega: os dois lados precisam assinar em "Revisão Concluída".
	AssinaturaEntrega DuplaAssinatura `gorm:"type:jsonb;serializer:json" json:"assinaturaEntrega"`

	// Guarda de concorrência otimista: toda transição é um UPDATE condicional.
	LockVersion int `gorm:"not null;default:0" json:"-"`
}

// Terminal indica se o entregável chegou ao estado final.
func (e *Entregavel) Terminal() bool {
	return e.Status == EntregavelEntregue
}
