package vacation

import "errors"

// Domain errors surface their PT-BR text verbatim to the API caller. None of
// them are retried: they are caller input errors or business-rule violations.
var (
	ErrInvalidPeriod      = errors.New("período inválido")
	ErrOverlappingPeriods = errors.New("os períodos informados não podem se sobrepor")
	ErrDurationMismatch   = errors.New("a soma dos períodos deve ser exatamente 30 dias corridos")
	ErrCapacityExceeded   = errors.New("o setor já atingiu o limite de férias")
	ErrNotFound           = errors.New("registro não encontrado")
	ErrInvalidState       = errors.New("apenas solicitações pendentes podem ser alteradas")
	ErrForbidden          = errors.New("você não pode alterar solicitação de outro usuário")
	ErrMissingReason      = errors.New("informe o motivo da negação")
	ErrInvalidRange       = errors.New("intervalo inválido")
)
