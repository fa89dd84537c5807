package spin

import (
	"crypto/rand"
	"math/big"
)

// Rand выдает равномерное случайное число в [0, n).
// Розыгрыш требует непредсказуемого источника, поэтому по умолчанию
// используется crypto/rand
type Rand interface {
	IntN(n int) int
}

type cryptoRand struct{}

func NewCryptoRand() Rand {
	return cryptoRand{}
}

func (cryptoRand) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// Отказ системного генератора случайных чисел - розыгрыш продолжать нельзя
		panic("crypto rand failed: " + err.Error())
	}
	return int(v.Int64())
}
