package model

// Rol catalog: 1 = piloto, 2 = jefe de yarda, 3 = administrador.
// Only pilots use the mobile client; jefes assign invoices from the web panel.
const (
	RolPiloto        = 1
	RolJefeDeYarda   = 2
	RolAdministrador = 3
)

type Rol struct {
	RolID       int    `json:"rol_id" gorm:"primaryKey;column:rol_id"`
	NombreRol   string `json:"nombre_rol" gorm:"not null"`
	Descripcion string `json:"descripcion"`
}

func (Rol) TableName() string { return "roles" }

type Sucursal struct {
	SucursalID     int    `json:"sucursal_id" gorm:"primaryKey;column:sucursal_id"`
	NombreSucursal string `json:"nombre_sucursal" gorm:"not null"`
}

func (Sucursal) TableName() string { return "sucursales" }

// Usuario is the identity record returned by login/verify. The client treats
// it as immutable between login and logout.
type Usuario struct {
	UsuarioID     int    `json:"usuario_id" gorm:"primaryKey;column:usuario_id"`
	NombreUsuario string `json:"nombre_usuario" gorm:"uniqueIndex;not null"`
	Correo        string `json:"correo"`
	PasswordHash  string `json:"-"`
	RolID         int    `json:"rol_id" gorm:"not null"`
	SucursalID    int    `json:"sucursal_id"`

	Rol      Rol      `json:"rol" gorm:"foreignKey:RolID;references:RolID"`
	Sucursal Sucursal `json:"sucursal" gorm:"foreignKey:SucursalID;references:SucursalID"`
}

func (Usuario) TableName() string { return "usuarios" }
