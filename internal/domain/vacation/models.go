package vacation

import "time"

type Status string

const (
	StatusPending   Status = "pendente"
	StatusApproved  Status = "aprovada"
	StatusDenied    Status = "negada"
	StatusCancelled Status = "cancelada"
)

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDenied || s == StatusCancelled
}

// Period is one contiguous inclusive date range within a request. Periods are
// immutable once persisted; a request is superseded whole, never edited.
type Period struct {
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`
}

// StatusPeriod is a period row joined with the status of its owning request,
// as returned by the store's window scan.
type StatusPeriod struct {
	Start  time.Time
	End    time.Time
	Status Status
}

// Request is a vacation request. SectorID is captured at creation time and
// frozen: moving the user to another sector later does not move past requests.
type Request struct {
	ID           string     `json:"id"`
	UserID       string     `json:"usuarioId"`
	SectorID     string     `json:"setorId"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"criadoEm"`
	DecidedBy    *string    `json:"decididoPorId,omitempty"`
	DecidedAt    *time.Time `json:"decididoEm,omitempty"`
	DenialReason *string    `json:"motivoNegacao,omitempty"`
	Periods      []Period   `json:"periodos"`
}
