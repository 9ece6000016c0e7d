package marco

import (
	"time"

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

func (r *Repository) Criar(m *models.Marco) error {
	if m.BaselineVersao == 0 {
		m.BaselineVersao = 1
	}
	if m.BaselineStatus == "" {
		m.BaselineStatus = models.BaselineNaoFirmada
	}
	if m.Status == "" {
		m.Status = models.MarcoNaoIniciado
	}
	// previsto nasce igual à baseline; diverge depois, revisável até a entrega
	if m.PrevistoInicio.IsZero() {
		m.PrevistoInicio = m.BaselineInicio
	}
	if m.PrevistoFim.IsZero() {
		m.PrevistoFim = m.BaselineFim
	}
	if m.PrevistoFaturavel == 0 {
		m.PrevistoFaturavel = m.BaselineFaturavel
	}
	if m.Faturavel == 0 {
		m.Faturavel = m.BaselineFaturavel
	}
	return r.DB.Create(m).Error
}

func (r *Repository) BuscarPorID(id uint) (*models.Marco, error) {
	var m models.Marco
	if err := r.DB.Preload("Entregaveis").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListarPorProjeto(projetoID uint) ([]models.Marco, error) {
	var list []models.Marco
	err := r.DB.Where("projeto_id = ?", projetoID).Find(&list).Error
	return list, err
}

func (r *Repository) Deletar(id uint) error {
	// a constraint OnDelete:CASCADE remove os entregáveis junto
	return r.DB.Select("Entregaveis").Delete(&models.Marco{ID: id}).Error
}

// Atualizar persiste campos de previsto/realizado (e baseline, enquanto não
// travada) com guarda otimista. A checagem de imutabilidade fica no handler,
// que monta a lista de campos a partir do DTO.
func (r *Repository) Atualizar(m *models.Marco, campos []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		versao := m.LockVersion
		m.LockVersion = versao + 1
		return storage.GuardedUpdate(tx, "marco", m.ID, versao, m.Status, append(campos, "lock_version"), m)
	})
}

// AssinarBaseline executa o protocolo de firmamento: relê o marco, aplica a
// transição e grava condicionalmente.
func (r *Repository) AssinarBaseline(id uint, lado string, assinatura models.Assinatura) (*models.Marco, error) {
	var m models.Marco
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := storage.First(tx, &m, "marco", id); err != nil {
			return err
		}
		if err := assinarBaseline(&m, lado, assinatura); err != nil {
			return err
		}
		versao := m.LockVersion
		m.LockVersion = versao + 1
		return storage.GuardedUpdate(tx, "marco", id, versao, m.BaselineStatus,
			[]string{"baseline_status", "baseline_travada", "assinatura_baseline", "lock_version"}, &m)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ResetarBaseline limpa travamento e assinaturas (escape admin-only, auditado).
func (r *Repository) ResetarBaseline(id uint) (*models.Marco, error) {
	var m models.Marco
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := storage.First(tx, &m, "marco", id); err != nil {
			return err
		}
		resetarBaseline(&m)
		versao := m.LockVersion
		m.LockVersion = versao + 1
		return storage.GuardedUpdate(tx, "marco", id, versao, m.BaselineStatus,
			[]string{"baseline_status", "baseline_travada", "assinatura_baseline", "lock_version"}, &m)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// RecalcularDerivados reaplica o agregador dentro da transação que mexeu nos
// entregáveis, para nenhum leitor observar derivados defasados.
func RecalcularDerivados(tx *gorm.DB, marcoID uint) error {
	var entregaveis []models.Entregavel
	if err := tx.Where("marco_id = ?", marcoID).Find(&entregaveis).Error; err != nil {
		return err
	}
	status, progresso := Recalcular(entregaveis)
	return tx.Model(&models.Marco{}).Where("id = ?", marcoID).
		Updates(map[string]interface{}{"status": status, "progresso": progresso}).Error
}

// IniciarSeNecessario marca o início real quando o primeiro entregável sai de
// Não Iniciado.
func IniciarSeNecessario(tx *gorm.DB, marcoID uint, agora time.Time) error {
	return tx.Model(&models.Marco{}).
		Where("id = ? AND inicio_real IS NULL AND status <> ?", marcoID, models.MarcoNaoIniciado).
		Update("inicio_real", agora).Error
}
