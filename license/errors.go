// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package license

import "errors"

// Business-rule failures are ordinary error values with the user-facing
// message as their text, so handlers can map them to a 400/404 envelope
// without a stack trace.
var (
	ErrSchoolNotFound    = errors.New("Escola não encontrada")
	ErrUserNotFound      = errors.New("Usuário não encontrado na escola")
	ErrFromUserNotFound  = errors.New("Usuário de origem não encontrado na escola")
	ErrToUserNotFound    = errors.New("Usuário de destino não encontrado na escola")
	ErrAlreadyLicensed   = errors.New("Usuário já possui licença Canva")
	ErrNotLicensed       = errors.New("Usuário não possui licença Canva")
	ErrFromNotLicensed   = errors.New("Usuário de origem não possui licença Canva")
	ErrToAlreadyLicensed = errors.New("Usuário de destino já possui licença Canva")
	ErrNotCompliant      = errors.New("Email do usuário não pertence a domínio autorizado")
	ErrToNotCompliant    = errors.New("Email do usuário de destino não é de domínio autorizado")
	ErrLimitReached      = errors.New("Limite de licenças atingido para a escola")
	ErrNegativeLimit     = errors.New("Limite deve ser maior ou igual a zero")
)

// IsNotFound reports whether err is a missing school/user failure (404).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSchoolNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrFromUserNotFound) ||
		errors.Is(err, ErrToUserNotFound)
}

// IsConflict reports whether err is a business precondition failure (400).
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyLicensed) ||
		errors.Is(err, ErrNotLicensed) ||
		errors.Is(err, ErrFromNotLicensed) ||
		errors.Is(err, ErrToAlreadyLicensed) ||
		errors.Is(err, ErrNotCompliant) ||
		errors.Is(err, ErrToNotCompliant) ||
		errors.Is(err, ErrLimitReached) ||
		errors.Is(err, ErrNegativeLimit)
}
