package model

import "time"

// SpinSession - привязка выбранного участника к предстоящему спину
type SpinSession struct {
	ID        string
	UserID    int
	CreatedAt time.Time
}
