package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados derivados do marco (nunca aceitos como escrita direta).
const (
	MarcoNaoIniciado = "Não Iniciado"
	MarcoEmAndamento = "Em Andamento"
	MarcoConcluido   = "Concluído"
)

// Estados do protocolo de firmamento da linha de base.
const (
	BaselineNaoFirmada            = "Não Firmada"
	BaselineAguardandoContraparte = "Aguardando Contraparte"
	BaselineFirmada               = "Firmada"
)

// SnapshotBaseline é uma versão superada da linha de base, anexada ao histórico
// quando um aditivo aplicado a altera.
type SnapshotBaseline struct {
	Versao    int       `json:"versao"`
	Inicio    time.Time `json:"inicio"`
	Fim       time.Time `json:"fim"`
	Faturavel float64   `json:"faturavel"`
	AditivoID uint      `json:"aditivoId,omitempty"`
	GravadoEm time.Time `json:"gravadoEm"`
}

// Marco pertence a exatamente um projeto e carrega o modelo financeiro em três
// camadas (baseline / previsto / realizado). Enquanto BaselineTravada estiver
// ativa, os campos de baseline só mudam por um aditivo aplicado.
type Marco struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ProjetoID uint   `gorm:"not null;index" json:"projetoId"`
	Codigo    string `gorm:"size:50" json:"codigo"`
	Nome      string `gorm:"size:255;not null" json:"nome"`

	// Cronograma em três camadas.
	BaselineInicio time.Time  `json:"baselineInicio"`
	BaselineFim    time.Time  `json:"baselineFim"`
	PrevistoInicio time.Time  `json:"previstoInicio"`
	PrevistoFim    time.Time  `json:"previstoFim"`
	InicioReal     *time.Time `json:"inicioReal"`

	// Financeiro em três camadas.
	BaselineFaturavel float64 `gorm:"not null;default:0" json:"baselineFaturavel"`
	PrevistoFaturavel float64 `gorm:"not null;default:0" json:"previstoFaturavel"`
	Faturavel         float64 `gorm:"not null;default:0" json:"faturavel"`

	// Derivados do conjunto de entregáveis; recalculados a cada escrita.
	Status    string `gorm:"size:50;not null;default:'Não Iniciado';index" json:"status"`
	Progresso int    `gorm:"not null;default:0" json:"progresso"`

	// Protocolo de firmamento (dupla assinatura) da linha de base.
	BaselineStatus     string          `gorm:"size:50;not null;default:'Não Firmada'" json:"baselineStatus"`
	BaselineTravada    bool            `gorm:"not null;default:false" json:"baselineTravada"`
	AssinaturaBaseline DuplaAssinatura `gorm:"type:jsonb;serializer:json" json:"assinaturaBaseline"`

	// Versão monotônica da baseline e histórico append-only de versões superadas.
	BaselineVersao    int                `gorm:"not null;default:1" json:"baselineVersao"`
	HistoricoBaseline []SnapshotBaseline `gorm:"type:jsonb;serializer:json" json:"historicoBaseline"`

	Entregaveis []Entregavel `gorm:"foreignKey:MarcoID;constraint:OnDelete:CASCADE" json:"entregaveis,omitempty"`

	LockVersion int `gorm:"not null;default:0" json:"-"`
}
