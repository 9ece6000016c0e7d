package projeto

import (
	"github.com/delivera/api-delivery/internal/models"
	"gorm.io/gorm"
)

// Projeto é o contrato de entrega: dono dos marcos e dos aditivos.
type Projeto struct {
	gorm.Model
	Codigo     string `gorm:"size:50;unique" json:"codigo"`
	Nome       string `gorm:"size:255;not null" json:"nome"`
	Fornecedor string `gorm:"size:255" json:"fornecedor"`
	Cliente    string `gorm:"size:255" json:"cliente"`
	Status     string `gorm:"size:50;default:'Ativo'" json:"status"`

	Marcos   []models.Marco   `gorm:"foreignKey:ProjetoID;constraint:OnDelete:CASCADE" json:"marcos,omitempty"`
	Aditivos []models.Aditivo `gorm:"foreignKey:ProjetoID;constraint:OnDelete:CASCADE" json:"aditivos,omitempty"`
	Membros  []models.Membro  `gorm:"foreignKey:ProjetoID;constraint:OnDelete:CASCADE" json:"membros,omitempty"`
}
