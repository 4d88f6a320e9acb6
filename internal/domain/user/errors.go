package user

import "errors"

var (
	ErrNotFound           = errors.New("usuário não encontrado")
	ErrNameRequired       = errors.New("o nome do usuário é obrigatório")
	ErrPasswordRequired   = errors.New("a senha é obrigatória")
	ErrInvalidRole        = errors.New("perfil inválido")
	ErrSectorNotFound     = errors.New("setor não encontrado")
	ErrMatriculaExhausted = errors.New("limite de matrículas atingido")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
)
