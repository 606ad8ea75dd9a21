package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// LoginResponse returns the issued token and the authenticated user.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// JWTClaims is the access-token payload: the user id and its role id. The
// role name is resolved against the database on each guarded request.
type JWTClaims struct {
	UserID int64 `json:"id"`
	RoleID int64 `json:"papelUsuarioID"`
	jwt.RegisteredClaims
}
