package entregavel

import (
	"time"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/marco"
	"github.com/delivera/api-delivery/internal/models"
	"github.com/delivera/api-delivery/internal/storage"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(e *models.Entregavel) error {
	if e.Status == "" {
		e.Status = models.EntregavelNaoIniciado
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return marco.RecalcularDerivados(tx, e.MarcoID)
	})
}

func (r *Repository) BuscarPorID(id uint) (*models.Entregavel, error) {
	var e models.Entregavel
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) ListarPorMarco(marcoID uint) ([]models.Entregavel, error) {
	var list []models.Entregavel
	err := r.DB.Where("marco_id = ?", marcoID).Find(&list).Error
	return list, err
}

// AtualizarMeta persiste nome/descrição/código/indicadores enquanto o
// entregável não for terminal.
func (r *Repository) AtualizarMeta(e *models.Entregavel) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		versao := e.LockVersion
		e.LockVersion = versao + 1
		return storage.GuardedUpdate(tx, "entregavel", e.ID, versao, e.Status,
			[]string{"codigo", "nome", "descricao", "indicadores", "lock_version"}, e)
	})
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var e models.Entregavel
		if err := storage.First(tx, &e, "entregavel", id); err != nil {
			return err
		}
		if e.Status == models.EntregavelEntregue {
			return apperrors.Immutable("entregavel", id, "status", e.Status)
		}
		if err := tx.Delete(&e).Error; err != nil {
			return err
		}
		return marco.RecalcularDerivados(tx, e.MarcoID)
	})
}

// transicao relê o estado persistido, aplica a mutação pura e grava
// condicionalmente, recalculando os derivados do marco na mesma transação.
func (r *Repository) transicao(id uint, campos []string, fn func(*models.Entregavel) error) (*models.Entregavel, error) {
	var e models.Entregavel
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := storage.First(tx, &e, "entregavel", id); err != nil {
			return err
		}
		if err := fn(&e); err != nil {
			return err
		}
		versao := e.LockVersion
		e.LockVersion = versao + 1
		if err := storage.GuardedUpdate(tx, "entregavel", id, versao, e.Status, append(campos, "lock_version"), &e); err != nil {
			return err
		}
		if err := marco.RecalcularDerivados(tx, e.MarcoID); err != nil {
			return err
		}
		return marco.IniciarSeNecessario(tx, e.MarcoID, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) AplicarProgresso(id uint, valor int) (*models.Entregavel, error) {
	return r.transicao(id, []string{"progresso", "status"}, func(e *models.Entregavel) error {
		return aplicarProgresso(e, valor)
	})
}

func (r *Repository) SubmeterRevisao(id uint) (*models.Entregavel, error) {
	return r.transicao(id, []string{"status"}, submeterRevisao)
}

func (r *Repository) AceitarRevisao(id uint) (*models.Entregavel, error) {
	return r.transicao(id, []string{"status"}, aceitarRevisao)
}

func (r *Repository) RetornarParaAjustes(id uint, motivo string) (*models.Entregavel, error) {
	return r.transicao(id, []string{"status", "motivo_retorno"}, func(e *models.Entregavel) error {
		return retornarParaAjustes(e, motivo)
	})
}

func (r *Repository) AssinarEntrega(id uint, lado string, assinatura models.Assinatura) (*models.Entregavel, error) {
	return r.transicao(id, []string{"status", "progresso", "assinatura_entrega"}, func(e *models.Entregavel) error {
		_, err := assinarEntrega(e, lado, assinatura)
		return err
	})
}
