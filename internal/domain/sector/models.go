package sector

import "time"

type Sector struct {
	ID                string    `json:"id"`
	Name              string    `json:"nome"`
	SimultaneousLimit int       `json:"limiteFeriasSimultaneas"`
	CreatedAt         time.Time `json:"criadoEm"`
}
