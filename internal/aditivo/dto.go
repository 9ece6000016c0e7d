package aditivo

import "github.com/delivera/api-delivery/internal/models"

type aditivoDTO struct {
	Codigo    string                `json:"codigo"`
	Titulo    string                `json:"titulo"`
	Descricao string                `json:"descricao"`
	Tipo      string                `json:"tipo"`
	Impactos  []models.ImpactoMarco `json:"impactos"`
}

type rejeitarDTO struct {
	Motivo string `json:"motivo"`
}

type assinarDTO struct {
	Lado string `json:"lado"`
}
