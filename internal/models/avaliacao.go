package models

import (
	"time"

	"github.com/google/uuid"
)

// Avaliacao registra a nota que um participante de um projeto concluído dá
// ao outro. Cada avaliador avalia um projeto uma única vez.
type Avaliacao struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjetoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_avaliacao_projeto_avaliador" json:"projetoId"`
	AvaliadorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_avaliacao_projeto_avaliador" json:"avaliadorId"`
	AvaliadoID  uuid.UUID `gorm:"type:uuid;not null;index" json:"avaliadoId"`

	Nota       int    `gorm:"not null" json:"nota"` // 1-5
	Comentario string `gorm:"type:text" json:"comentario,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	Projeto   *Projeto `gorm:"foreignKey:ProjetoID" json:"projeto,omitempty"`
	Avaliador *Usuario `gorm:"foreignKey:AvaliadorID" json:"avaliador,omitempty"`
	Avaliado  *Usuario `gorm:"foreignKey:AvaliadoID" json:"avaliado,omitempty"`
}
