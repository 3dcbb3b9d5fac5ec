package stubserver

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

// Open connects the stub's sqlite database, migrates the SIVEC tables and
// seeds the fixed catalogs (roles, sucursales, estados de guía).
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("stubserver: abrir sqlite: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Rol{},
		&model.Sucursal{},
		&model.Usuario{},
		&model.FacturaAsignada{},
		&model.GuiaVinculada{},
		&model.GuiaDisponible{},
		&model.Viaje{},
		&model.EstadoGuia{},
	); err != nil {
		return nil, fmt.Errorf("stubserver: migrar: %w", err)
	}

	if err := seedCatalogos(db); err != nil {
		return nil, err
	}
	return db, nil
}

func seedCatalogos(db *gorm.DB) error {
	roles := []model.Rol{
		{RolID: model.RolPiloto, NombreRol: "piloto", Descripcion: "Conductor que entrega guías"},
		{RolID: model.RolJefeDeYarda, NombreRol: "jefe_de_yarda", Descripcion: "Asigna facturas a pilotos"},
		{RolID: model.RolAdministrador, NombreRol: "administrador", Descripcion: "Panel web"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("stubserver: seed roles: %w", err)
	}

	sucursales := []model.Sucursal{{SucursalID: 1, NombreSucursal: "Central"}}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sucursales).Error; err != nil {
		return fmt.Errorf("stubserver: seed sucursales: %w", err)
	}

	estados := model.CatalogoEstados()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&estados).Error; err != nil {
		return fmt.Errorf("stubserver: seed estados: %w", err)
	}
	return nil
}

// CrearUsuario creates or updates a user with a bcrypt-hashed password.
func CrearUsuario(db *gorm.DB, nombre, correo, password string, rolID int) (*model.Usuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := model.Usuario{
		NombreUsuario: nombre,
		Correo:        correo,
		PasswordHash:  string(hash),
		RolID:         rolID,
		SucursalID:    1,
	}
	err = db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nombre_usuario"}},
		UpdateAll: true,
	}).Create(&u).Error
	if err != nil {
		return nil, err
	}
	if err := db.Preload("Rol").Preload("Sucursal").
		First(&u, "nombre_usuario = ?", nombre).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SembrarFactura registers an invoice assigned to a pilot, optionally with
// candidate guides waiting in the yard system.
func SembrarFactura(db *gorm.DB, f model.FacturaAsignada, candidatas []model.GuiaDisponible) error {
	if f.FechaAsignacion.IsZero() {
		f.FechaAsignacion = time.Now()
	}
	if err := db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&f).Error; err != nil {
		return err
	}
	for i := range candidatas {
		candidatas[i].NumeroFactura = f.NumeroFactura
		if candidatas[i].Piloto == "" {
			candidatas[i].Piloto = f.Piloto
		}
		if candidatas[i].FechaEmision.IsZero() {
			candidatas[i].FechaEmision = time.Now()
		}
	}
	if len(candidatas) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&candidatas).Error
}
