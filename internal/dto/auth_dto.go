package dto

import "github.com/AnubisPsy/Mobile-SIVEC/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest accepts the username or the e-mail in LoginInput.
type LoginRequest struct {
	LoginInput string `json:"loginInput" validate:"required,min=1"`
	Password   string `json:"password" validate:"required,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginData struct {
	Token   string        `json:"token"`
	Usuario model.Usuario `json:"usuario"`
}

type VerificarData struct {
	Usuario     model.Usuario `json:"usuario"`
	TokenValido bool          `json:"token_valido"`
}
