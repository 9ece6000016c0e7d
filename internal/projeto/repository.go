package projeto

import (
	"github.com/delivera/api-delivery/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(p *Projeto) error {
	return r.DB.Create(p).Error
}

func (r *Repository) BuscarPorID(id uint) (*Projeto, error) {
	var p Projeto
	if err := r.DB.Preload("Marcos").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListarTodos() ([]Projeto, error) {
	var list []Projeto
	err := r.DB.Find(&list).Error
	return list, err
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Select("Marcos", "Aditivos", "Membros").Delete(&Projeto{Model: gorm.Model{ID: id}}).Error
}

func (r *Repository) MarcosDoProjeto(id uint) ([]models.Marco, error) {
	var marcos []models.Marco
	err := r.DB.Where("projeto_id = ?", id).Find(&marcos).Error
	return marcos, err
}

func (r *Repository) SalvarMembro(m *models.Membro) error {
	return r.DB.Create(m).Error
}

func (r *Repository) ListarMembros(projetoID uint) ([]models.Membro, error) {
	var membros []models.Membro
	err := r.DB.Where("projeto_id = ?", projetoID).Find(&membros).Error
	return membros, err
}

func (r *Repository) RemoverMembro(projetoID, membroID uint) error {
	return r.DB.Where("projeto_id = ? AND id = ?", projetoID, membroID).Delete(&models.Membro{}).Error
}
