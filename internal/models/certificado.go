package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados do certificado de aceite.
const (
	CertificadoRascunho             = "Rascunho"
	CertificadoAguardandoFornecedor = "Aguardando Fornecedor"
	CertificadoAguardandoCliente    = "Aguardando Cliente"
	CertificadoAssinado             = "Assinado"
)

// ItemSnapshot congela código/nome/status de um entregável no momento da
// geração do certificado; edições posteriores nunca alteram o snapshot.
type ItemSnapshot struct {
	EntregavelID uint   `json:"entregavelId"`
	Codigo       string `json:"codigo"`
	Nome         string `json:"nome"`
	Status       string `json:"status"`
}

// Certificado é o documento de aceite que dispara faturamento, no máximo um
// ativo por marco. Só pode ser gerado com todos os entregáveis entregues;
// assinado pelos dois lados, torna-se permanentemente imutável.
type Certificado struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	MarcoID uint   `gorm:"not null;uniqueIndex" json:"marcoId"`
	Numero  string `gorm:"size:100;not null;unique" json:"numero"`

	// Cópia de Marco.Faturavel no momento da geração.
	ValorPagamento float64 `gorm:"not null;default:0" json:"valorPagamento"`

	Itens []ItemSnapshot `gorm:"type:jsonb;serializer:json" json:"itens"`

	Status     string          `gorm:"size:50;not null;default:'Rascunho';index" json:"status"`
	Assinatura DuplaAssinatura `gorm:"type:jsonb;serializer:json" json:"assinatura"`

	LockVersion int `gorm:"not null;default:0" json:"-"`
}
