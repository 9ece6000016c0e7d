package storage

import (
	"errors"

	"github.com/delivera/api-delivery/internal/apperrors"
	"gorm.io/gorm"
)

// GuardedUpdate aplica um UPDATE condicional sobre a linha lida anteriormente:
// WHERE id = ? AND lock_version = ?. O chamador já incrementou LockVersion na
// struct mutada e lista em campos as colunas a persistir (incluindo
// "lock_version"). Se nenhuma linha for afetada, outro ator escreveu no meio e
// o chamador recebe ConflictError para reler e decidir.
func GuardedUpdate(tx *gorm.DB, entidade string, id uint, lockVersion int, estadoAtual string, campos []string, valor interface{}) error {
	res := tx.Model(valor).
		Where("id = ? AND lock_version = ?", id, lockVersion).
		Select(campos).
		Updates(valor)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict(entidade, id, estadoAtual)
	}
	return nil
}

// First relê a entidade pelo ID traduzindo gorm.ErrRecordNotFound para o
// NotFoundError da taxonomia.
func First(tx *gorm.DB, dest interface{}, entidade string, id uint) error {
	if err := tx.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(entidade, id)
		}
		return err
	}
	return nil
}
