package sector

import "errors"

var (
	ErrNotFound     = errors.New("setor não encontrado")
	ErrNameRequired = errors.New("o nome do setor é obrigatório")
	ErrNameTaken    = errors.New("já existe um setor com esse nome")
	ErrInvalidLimit = errors.New("o limite de férias simultâneas deve ser >= 1")
	ErrInUse        = errors.New("não é possível excluir: setor está vinculado a usuários")
)
