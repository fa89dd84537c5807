package model

import "time"

// WinnerRecord - запись о выигрыше.
// Денормализованный снимок: имя и номинал на момент спина
type WinnerRecord struct {
	ID    int
	Name  string
	Prize int
	Date  time.Time
}
