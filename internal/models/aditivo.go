package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados do aditivo (controle de mudanças).
const (
	AditivoRascunho             = "Rascunho"
	AditivoSubmetido            = "Submetido"
	AditivoAguardandoFornecedor = "Aguardando Fornecedor"
	AditivoAguardandoCliente    = "Aguardando Cliente"
	AditivoAprovado             = "Aprovado"
	AditivoAplicado             = "Aplicado"
	AditivoRejeitado            = "Rejeitado"
)

// Tipos de aditivo.
const (
	AditivoExtensaoEscopo = "Extensão de Escopo"
	AditivoReducaoEscopo  = "Redução de Escopo"
	AditivoExtensaoPrazo  = "Extensão de Prazo"
	AditivoAjusteCusto    = "Ajuste de Custo"
)

// ImpactoMarco é a tupla (marco, impacto de custo, impacto em dias) de um
// aditivo; um aditivo pode atingir vários marcos.
type ImpactoMarco struct {
	MarcoID      uint    `json:"marcoId"`
	ImpactoCusto float64 `json:"impactoCusto"`
	ImpactoDias  int     `json:"impactoDias"`
}

// Aditivo é a solicitação formal de mudança: único caminho sancionado para
// alterar uma linha de base travada. Editável apenas em rascunho; com qualquer
// assinatura preenchida torna-se imutável, exceto pela assinatura restante ou
// por uma rejeição explícita.
type Aditivo struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ProjetoID uint   `gorm:"not null;index" json:"projetoId"`
	Codigo    string `gorm:"size:50" json:"codigo"`
	Titulo    string `gorm:"size:255;not null" json:"titulo"`
	Descricao string `json:"descricao"`
	Tipo      string `gorm:"size:50;not null" json:"tipo"`

	Impactos []ImpactoMarco `gorm:"type:jsonb;serializer:json" json:"impactos"`

	Status         string          `gorm:"size:50;not null;default:'Rascunho';index" json:"status"`
	MotivoRejeicao string          `json:"motivoRejeicao"`
	Assinatura     DuplaAssinatura `gorm:"type:jsonb;serializer:json" json:"assinatura"`

	LockVersion int `gorm:"not null;default:0" json:"-"`
}

// TipoValido reporta se o tipo informado pertence ao conjunto fechado.
func TipoValido(tipo string) bool {
	switch tipo {
	case AditivoExtensaoEscopo, AditivoReducaoEscopo, AditivoExtensaoPrazo, AditivoAjusteCusto:
		return true
	}
	return false
}
