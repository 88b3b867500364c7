package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest carries the credentials for an authentication attempt.
type LoginRequest struct {
	Account  string `json:"account" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the user projection plus a signed access token.
type LoginResponse struct {
	User  UserInfo `json:"user"`
	Token string   `json:"token"`
}

// Claims are embedded in issued access tokens.
type Claims struct {
	UserID  int64  `json:"uid"`
	Account string `json:"account"`
	Role    Role   `json:"role"`
	jwt.RegisteredClaims
}
