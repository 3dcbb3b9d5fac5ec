package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

// One snapshot per view; overwritten on every successful fetch.
const (
	VistaActivas   = "activas"
	VistaHistorial = "historial"
)

type FacturaSnapshot struct {
	Vista         string         `gorm:"primaryKey"`
	Contenido     datatypes.JSON `gorm:"not null"`
	ActualizadoEn time.Time
}

func (FacturaSnapshot) TableName() string { return "facturas_snapshot" }

// ErrSinSnapshot is returned when a view was never fetched successfully.
var ErrSinSnapshot = errors.New("store: sin datos sincronizados para esta vista")

type CacheRepository interface {
	GuardarFacturas(ctx context.Context, vista string, facturas []model.FacturaAsignada) error
	Facturas(ctx context.Context, vista string) ([]model.FacturaAsignada, time.Time, error)
}

type cacheRepo struct{ db *gorm.DB }

func NewCacheRepository(db *gorm.DB) CacheRepository { return &cacheRepo{db: db} }

func (r *cacheRepo) GuardarFacturas(ctx context.Context, vista string, facturas []model.FacturaAsignada) error {
	raw, err := json.Marshal(facturas)
	if err != nil {
		return fmt.Errorf("store: serializar snapshot: %w", err)
	}
	snap := FacturaSnapshot{
		Vista:         vista,
		Contenido:     datatypes.JSON(raw),
		ActualizadoEn: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&snap).Error
}

func (r *cacheRepo) Facturas(ctx context.Context, vista string) ([]model.FacturaAsignada, time.Time, error) {
	var snap FacturaSnapshot
	err := r.db.WithContext(ctx).First(&snap, "vista = ?", vista).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, ErrSinSnapshot
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	var facturas []model.FacturaAsignada
	if err := json.Unmarshal(snap.Contenido, &facturas); err != nil {
		return nil, time.Time{}, fmt.Errorf("store: snapshot corrupto: %w", err)
	}
	return facturas, snap.ActualizadoEn, nil
}
