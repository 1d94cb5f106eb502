package models

import (
	"time"

	"github.com/google/uuid"
)

// Cliente é o perfil de contratante (empresa ou pessoa física) de um usuário.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UsuarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"usuarioId"`

	NomeFantasia string `gorm:"type:varchar(150);not null" json:"nomeFantasia"`
	CpfOuCnpj    string `gorm:"type:varchar(14)" json:"cpfOuCnpj,omitempty"`
	Descricao    string `gorm:"type:text" json:"descricao,omitempty"`
	WebsiteURL   string `gorm:"type:text" json:"websiteUrl,omitempty"`
	Localizacao  string `gorm:"type:varchar(150)" json:"localizacao,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}
