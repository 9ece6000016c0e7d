package entregavel

type entregavelCreateDTO struct {
	Codigo      string   `json:"codigo"`
	Nome        string   `json:"nome"`
	Descricao   string   `json:"descricao"`
	Indicadores []string `json:"indicadores"`
}

type entregavelUpdateDTO struct {
	Codigo      *string   `json:"codigo"`
	Nome        *string   `json:"nome"`
	Descricao   *string   `json:"descricao"`
	Indicadores *[]string `json:"indicadores"`

	// derivados/controlados: presentes aqui só para rejeição explícita
	Status    *string `json:"status"`
	Progresso *int    `json:"progresso"`
}

type progressoDTO struct {
	Progresso int `json:"progresso"`
}

type retornarDTO struct {
	Motivo string `json:"motivo"`
}

type assinarDTO struct {
	Lado string `json:"lado"`
}
