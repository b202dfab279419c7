package dsers

import "errors"

var (
	// ErrMissingCredentials é retornado por Login quando falta usuário ou senha
	ErrMissingCredentials = errors.New("dsers credentials are required")
	// ErrStepFailed embrulha qualquer passo do navegador que não terminou
	ErrStepFailed = errors.New("dsers step failed")
)
