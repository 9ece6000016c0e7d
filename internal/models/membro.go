package models

import "time"

// Membro vincula um usuário a um projeto com um papel do conjunto fechado.
type Membro struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProjetoID uint   `gorm:"not null;index:idx_membro_projeto_usuario,unique" json:"projetoId"`
	UsuarioID uint   `gorm:"not null;index:idx_membro_projeto_usuario,unique" json:"usuarioId"`
	Papel     string `gorm:"size:50;not null" json:"papel"`
}
