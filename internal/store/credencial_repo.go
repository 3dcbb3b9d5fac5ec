package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

// Exactly two rows ever exist: the opaque session token and the serialized
// user record. The keys match the ones the backend team reserved for this
// client.
const (
	claveToken   = "sivec_token"
	claveUsuario = "sivec_user"
)

type Credencial struct {
	Clave string `gorm:"primaryKey"`
	Valor string `gorm:"not null"`
}

func (Credencial) TableName() string { return "credenciales" }

type CredencialRepository interface {
	GuardarSesion(ctx context.Context, token string, u *model.Usuario) error
	Token(ctx context.Context) (string, error)
	Usuario(ctx context.Context) (*model.Usuario, error)
	Limpiar(ctx context.Context) error
}

type credencialRepo struct{ db *gorm.DB }

func NewCredencialRepository(db *gorm.DB) CredencialRepository {
	return &credencialRepo{db: db}
}

func (r *credencialRepo) GuardarSesion(ctx context.Context, token string, u *model.Usuario) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("store: serializar usuario: %w", err)
	}
	rows := []Credencial{
		{Clave: claveToken, Valor: token},
		{Clave: claveUsuario, Valor: string(raw)},
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
}

// Token returns "" (not an error) when no session is stored.
func (r *credencialRepo) Token(ctx context.Context) (string, error) {
	return r.valor(ctx, claveToken)
}

// Usuario returns nil when no user record is stored.
func (r *credencialRepo) Usuario(ctx context.Context) (*model.Usuario, error) {
	raw, err := r.valor(ctx, claveUsuario)
	if err != nil || raw == "" {
		return nil, err
	}
	var u model.Usuario
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// A corrupt record is indistinguishable from no record: next restore
		// starts logged-out.
		return nil, nil
	}
	return &u, nil
}

// Limpiar removes both entries in one statement. Partial failure leaves the
// next Restore treating the device as logged-out, which is the safe side.
func (r *credencialRepo) Limpiar(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("clave IN ?", []string{claveToken, claveUsuario}).
		Delete(&Credencial{}).Error
}

func (r *credencialRepo) valor(ctx context.Context, clave string) (string, error) {
	var c Credencial
	err := r.db.WithContext(ctx).First(&c, "clave = ?", clave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.Valor, nil
}
