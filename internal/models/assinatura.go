package models

import "time"

// Lado de uma assinatura dupla.
const (
	LadoFornecedor = "fornecedor"
	LadoCliente    = "cliente"
)

// Assinatura registra quem assinou, com papel no momento da assinatura.
type Assinatura struct {
	UsuarioID  uint      `json:"usuarioId"`
	Nome       string    `json:"nome"`
	Papel      string    `json:"papel"`
	AssinadoEm time.Time `json:"assinadoEm"`
}

// DuplaAssinatura é o par de slots opcionais (fornecedor, cliente) reutilizado
// por entrega, linha de base, certificado e aditivo. Um slot preenchido nunca é
// sobrescrito silenciosamente.
type DuplaAssinatura struct {
	Fornecedor *Assinatura `json:"fornecedor,omitempty"`
	Cliente    *Assinatura `json:"cliente,omitempty"`
}

// Completa indica se os dois lados já assinaram.
func (d DuplaAssinatura) Completa() bool {
	return d.Fornecedor != nil && d.Cliente != nil
}

// Assinado indica se o slot do lado informado já está preenchido.
func (d DuplaAssinatura) Assinado(lado string) bool {
	if lado == LadoFornecedor {
		return d.Fornecedor != nil
	}
	return d.Cliente != nil
}

// Preencher grava a assinatura no slot do lado informado. Retorna false se o
// slot já estava preenchido (a decisão entre no-op e erro fica no chamador).
func (d *DuplaAssinatura) Preencher(lado string, a Assinatura) bool {
	if d.Assinado(lado) {
		return false
	}
	if lado == LadoFornecedor {
		d.Fornecedor = &a
	} else {
		d.Cliente = &a
	}
	return true
}

// Limpar zera os dois slots (usado apenas pelo reset administrativo auditado).
func (d *DuplaAssinatura) Limpar() {
	d.Fornecedor = nil
	d.Cliente = nil
}
