package permissao

import (
	"errors"

	"github.com/delivera/api-delivery/internal/models"
	"gorm.io/gorm"
)

// Resolver traduz (ator, projeto) para o papel com escopo de projeto.
// Admin global tem papel admin em qualquer projeto; sem vínculo, nenhum papel.
type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

// Papel retorna o papel do usuário no projeto, ou "" quando não há vínculo.
func (r *Resolver) Papel(usuarioID, projetoID uint, isAdmin bool) (string, error) {
	if isAdmin {
		return PapelAdmin, nil
	}
	var m models.Membro
	err := r.DB.Where("projeto_id = ? AND usuario_id = ?", projetoID, usuarioID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.Papel, nil
}

// PapelValido reporta se o papel pertence ao conjunto fechado.
func PapelValido(papel string) bool {
	switch papel {
	case PapelAdmin, PapelFornecedor, PapelCliente, PapelColaborador, PapelVisualizador:
		return true
	}
	return false
}
