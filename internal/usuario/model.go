package usuario

import "gorm.io/gorm"

// Usuario é a identidade de login; papéis por projeto ficam em Membro.
type Usuario struct {
	gorm.Model
	Nome    string `json:"nome"`
	Email   string `json:"email" gorm:"unique"`
	Senha   string `json:"-"`
	IsAdmin bool   `json:"isAdmin"`
}
