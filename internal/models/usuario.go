package models

import (
	"time"

	"github.com/google/uuid"
)

type RoleUsuario string

const (
	RoleUser  RoleUsuario = "USER"
	RoleAdmin RoleUsuario = "ADMIN"
)

type Usuario struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nome  string    `gorm:"not null" json:"nome"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Senha   string      `gorm:"not null" json:"-"`
	FotoURL string      `gorm:"type:text" json:"fotoUrl,omitempty"`
	Role    RoleUsuario `gorm:"type:varchar(20);not null;default:'USER';index" json:"role"`
	Ativo   bool        `gorm:"default:true" json:"ativo"`

	CriadoEm  time.Time `gorm:"autoCreateTime" json:"criadoEm"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Conta unificada: o mesmo usuário pode ter os dois perfis.
	PerfilCliente    *Cliente   `gorm:"foreignKey:UsuarioID;references:ID" json:"perfilCliente,omitempty"`
	PerfilFreelancer *Curriculo `gorm:"foreignKey:UsuarioID;references:ID" json:"perfilFreelancer,omitempty"`
}
