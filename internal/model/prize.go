package model

// PrizeTier - позиция инвентаря призов: номинал и остаток.
// Quantity никогда не уходит в минус
type PrizeTier struct {
	ID       int
	Amount   int
	Quantity int
}
