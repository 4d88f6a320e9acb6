package user

import "time"

type User struct {
	ID           string    `json:"id"`
	Matricula    string    `json:"matricula"`
	Name         string    `json:"nome"`
	Role         string    `json:"perfil"`
	SectorID     string    `json:"setorId"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"criadoEm"`
}
