package certificado

import (
	"errors"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
	"github.com/delivera/api-delivery/internal/projeto"
	"github.com/delivera/api-delivery/internal/storage"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) BuscarPorID(id uint) (*models.Certificado, error) {
	var c models.Certificado
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) BuscarPorMarco(marcoID uint) (*models.Certificado, error) {
	var c models.Certificado
	if err := r.DB.Where("marco_id = ?", marcoID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Gerar cria o certificado dentro de uma transação, revalidando contra o
// conjunto de entregáveis persistido: todos entregues e nenhum certificado
// ativo para o marco.
func (r *Repository) Gerar(marcoID uint) (*models.Certificado, error) {
	var c *models.Certificado
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var m models.Marco
		if err := storage.First(tx, &m, "marco", marcoID); err != nil {
			return err
		}

		var existente models.Certificado
		err := tx.Where("marco_id = ?", marcoID).First(&existente).Error
		if err == nil {
			return apperrors.InvalidTransitionMsg("certificado", existente.ID, "gerar", existente.Status,
				"marco já possui certificado ativo")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var p projeto.Projeto
		if err := tx.First(&p, m.ProjetoID).Error; err != nil {
			return err
		}

		var entregaveis []models.Entregavel
		if err := tx.Where("marco_id = ?", marcoID).Find(&entregaveis).Error; err != nil {
			return err
		}

		novo, err := montarCertificado(&m, entregaveis, p.Codigo)
		if err != nil {
			return err
		}
		if err := tx.Create(novo).Error; err != nil {
			return traduzirDuplicado(err, marcoID)
		}
		c = novo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// traduzirDuplicado converte a violação do índice único de marco_id em
// ConflictError: dois geradores concorrentes passam pela checagem de
// existência e o perdedor deve reler, não receber o erro cru do banco.
func traduzirDuplicado(err error, marcoID uint) error {
	var pgErr *pgconn.PgError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
		return apperrors.Conflict("certificado", marcoID, models.CertificadoRascunho)
	}
	return err
}

// Assinar relê o certificado e grava a assinatura com guarda condicional; o
// escritor perdedor de uma corrida recebe ConflictError.
func (r *Repository) Assinar(id uint, lado string, assinatura models.Assinatura) (*models.Certificado, error) {
	var c models.Certificado
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := storage.First(tx, &c, "certificado", id); err != nil {
			return err
		}
		if err := assinar(&c, lado, assinatura); err != nil {
			return err
		}
		versao := c.LockVersion
		c.LockVersion = versao + 1
		return storage.GuardedUpdate(tx, "certificado", id, versao, c.Status,
			[]string{"status", "assinatura", "lock_version"}, &c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
