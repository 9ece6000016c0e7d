package aditivo

import (
	"time"

	"github.com/delivera/api-delivery/internal/apperrors"
	"github.com/delivera/api-delivery/internal/models"
	"github.com/delivera/api-delivery/internal/storage"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
	// política de contagem dos impactos em dias (corridos vs. úteis)
	DiasUteis bool
}

func NewRepository(db *gorm.DB, diasUteis bool) *Repository {
	return &Repository{DB: db, DiasUteis: diasUteis}
}

func (r *Repository) Criar(a *models.Aditivo) error {
	if a.Status == "" {
		a.Status = models.AditivoRascunho
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := r.validarImpactos(tx, a); err != nil {
			return err
		}
		return tx.Create(a).Error
	})
}

func (r *Repository) BuscarPorID(id uint) (*models.Aditivo, error) {
	var a models.Aditivo
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListarPorProjeto(projetoID uint) ([]models.Aditivo, error) {
	var list []models.Aditivo
	err := r.DB.Where("projeto_id = ?", projetoID).Find(&list).Error
	return list, err
}

// Editar persiste campos de conteúdo, válido apenas em Rascunho (o handler já
// montou a struct; a janela mutável é reavaliada contra o estado persistido).
func (r *Repository) Editar(a *models.Aditivo) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var atual models.Aditivo
		if err := storage.First(tx, &atual, "aditivo", a.ID); err != nil {
			return err
		}
		if err := editavel(&atual); err != nil {
			return err
		}
		if err := r.validarImpactos(tx, a); err != nil {
			return err
		}
		versao := atual.LockVersion
		a.LockVersion = versao + 1
		return storage.GuardedUpdate(tx, "aditivo", a.ID, versao, atual.Status,
			[]string{"codigo", "titulo", "descricao", "tipo", "impactos", "lock_version"}, a)
	})
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var a models.Aditivo
		if err := storage.First(tx, &a, "aditivo", id); err != nil {
			return err
		}
		if err := deletavel(&a); err != nil {
			return err
		}
		return tx.Delete(&a).Error
	})
}

// transicao relê, aplica a mutação pura e grava condicionalmente.
func (r *Repository) transicao(id uint, campos []string, fn func(*models.Aditivo) error) (*models.Aditivo, error) {
	var a models.Aditivo
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := storage.First(tx, &a, "aditivo", id); err != nil {
			return err
		}
		if err := fn(&a); err != nil {
			return err
		}
		versao := a.LockVersion
		a.LockVersion = versao + 1
		return storage.GuardedUpdate(tx, "aditivo", id, versao, a.Status, append(campos, "lock_version"), &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Submeter(id uint) (*models.Aditivo, error) {
	return r.transicao(id, []string{"status"}, submeter)
}

func (r *Repository) Assinar(id uint, lado string, assinatura models.Assinatura) (*models.Aditivo, error) {
	return r.transicao(id, []string{"status", "assinatura"}, func(a *models.Aditivo) error {
		return assinar(a, lado, assinatura)
	})
}

func (r *Repository) Rejeitar(id uint, motivo string) (*models.Aditivo, error) {
	return r.transicao(id, []string{"status", "motivo_rejeicao"}, func(a *models.Aditivo) error {
		return rejeitar(a, motivo)
	})
}

// Aplicar muda os marcos atingidos e o aditivo na mesma transação: por marco,
// versão corrente vai para o histórico, cronograma e faturável de baseline são
// ajustados e a versão incrementada; por fim o aditivo vira Aplicado. Tudo ou
// nada.
func (r *Repository) Aplicar(id uint) (*models.Aditivo, error) {
	var a models.Aditivo
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := storage.First(tx, &a, "aditivo", id); err != nil {
			return err
		}
		if a.Status != models.AditivoAprovado {
			return apperrors.InvalidTransition("aditivo", a.ID, "aplicar", a.Status)
		}

		agora := time.Now().UTC()
		for _, imp := range a.Impactos {
			var m models.Marco
			if err := storage.First(tx, &m, "marco", imp.MarcoID); err != nil {
				return err
			}
			aplicarNoMarco(&m, imp, a.Tipo, r.DiasUteis, a.ID, agora)
			versao := m.LockVersion
			m.LockVersion = versao + 1
			if err := storage.GuardedUpdate(tx, "marco", m.ID, versao, m.Status,
				[]string{"baseline_inicio", "baseline_fim", "baseline_faturavel", "baseline_versao", "historico_baseline", "lock_version"}, &m); err != nil {
				return err
			}
		}

		a.Status = models.AditivoAplicado
		versao := a.LockVersion
		a.LockVersion = versao + 1
		return storage.GuardedUpdate(tx, "aditivo", a.ID, versao, a.Status,
			[]string{"status", "lock_version"}, &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// validarImpactos confere tipo, conjunto não vazio e pertencimento de cada
// marco ao projeto do aditivo.
func (r *Repository) validarImpactos(tx *gorm.DB, a *models.Aditivo) error {
	if !models.TipoValido(a.Tipo) {
		return apperrors.Validation("aditivo", a.ID, "tipo", "tipo desconhecido")
	}
	if len(a.Impactos) == 0 {
		return apperrors.Validation("aditivo", a.ID, "impactos", "ao menos um marco deve ser atingido")
	}
	for _, imp := range a.Impactos {
		var m models.Marco
		if err := storage.First(tx, &m, "marco", imp.MarcoID); err != nil {
			return err
		}
		if m.ProjetoID != a.ProjetoID {
			return apperrors.Validation("aditivo", a.ID, "impactos", "marco de outro projeto")
		}
	}
	return nil
}
