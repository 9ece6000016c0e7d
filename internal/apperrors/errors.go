package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError sinaliza entrada malformada ou fora de faixa.
type ValidationError struct {
	Entity string
	ID     uint
	Field  string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %d: campo '%s' inválido: %s", e.Entity, e.ID, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Msg)
}

// PermissionDenied sinaliza que o papel do ator não cobre a operação.
type PermissionDenied struct {
	Role      string
	Operation string
}

func (e *PermissionDenied) Error() string {
	return fmt.Sprintf("papel '%s' não tem permissão para '%s'", e.Role, e.Operation)
}

// InvalidStateTransition sinaliza operação ilegal a partir do estado persistido,
// incluindo pré-condições não atendidas (ex.: certificado com entregáveis pendentes).
type InvalidStateTransition struct {
	Entity    string
	ID        uint
	Operation string
	State     string
	Msg       string
}

func (e *InvalidStateTransition) Error() string {
	s := fmt.Sprintf("%s %d: operação '%s' inválida no estado '%s'", e.Entity, e.ID, e.Operation, e.State)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// ImmutableFieldError sinaliza escrita em campo travado (baseline após lock,
// edição/exclusão fora da janela mutável).
type ImmutableFieldError struct {
	Entity string
	ID     uint
	Field  string
	State  string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("%s %d: campo '%s' é imutável no estado '%s'", e.Entity, e.ID, e.Field, e.State)
}

// ConflictError sinaliza falha de concorrência otimista; é o único erro
// apropriado para retry após releitura.
type ConflictError struct {
	Entity string
	ID     uint
	State  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d: escrita concorrente detectada (estado esperado '%s')", e.Entity, e.ID, e.State)
}

// NotFoundError sinaliza entidade inexistente.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d não encontrado", e.Entity, e.ID)
}

func Validation(entity string, id uint, field, msg string) error {
	return &ValidationError{Entity: entity, ID: id, Field: field, Msg: msg}
}

func Denied(role, operation string) error {
	return &PermissionDenied{Role: role, Operation: operation}
}

func InvalidTransition(entity string, id uint, operation, state string) error {
	return &InvalidStateTransition{Entity: entity, ID: id, Operation: operation, State: state}
}

func InvalidTransitionMsg(entity string, id uint, operation, state, msg string) error {
	return &InvalidStateTransition{Entity: entity, ID: id, Operation: operation, State: state, Msg: msg}
}

func Immutable(entity string, id uint, field, state string) error {
	return &ImmutableFieldError{Entity: entity, ID: id, Field: field, State: state}
}

func Conflict(entity string, id uint, state string) error {
	return &ConflictError{Entity: entity, ID: id, State: state}
}

func NotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsConflict reporta se err é um ConflictError (o único caso retryável).
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
