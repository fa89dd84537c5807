package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type Admin struct {
	ID           int
	Username     string
	PasswordHash string
	Salt         string
}

type AdminClaims struct {
	jwt.RegisteredClaims
}
