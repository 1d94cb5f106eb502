package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StatusProjeto string

const (
	ProjetoRascunho    StatusProjeto = "RASCUNHO"
	ProjetoAberto      StatusProjeto = "ABERTO"
	ProjetoEmAndamento StatusProjeto = "EM_ANDAMENTO"
	ProjetoConcluido   StatusProjeto = "CONCLUIDO"
	ProjetoCancelado   StatusProjeto = "CANCELADO"
)

type TipoProjeto string

const (
	TipoProjetoFixo TipoProjeto = "PROJETO_FIXO"
	TipoDiaria      TipoProjeto = "DIÁRIA"
	TipoHora        TipoProjeto = "HORA"
	TipoConsultoria TipoProjeto = "CONSULTORIA"
	TipoLongoPrazo  TipoProjeto = "LONGO_PRAZO"
)

func (s StatusProjeto) Valido() bool {
	switch s {
	case ProjetoRascunho, ProjetoAberto, ProjetoEmAndamento, ProjetoConcluido, ProjetoCancelado:
		return true
	}
	return false
}

func (t TipoProjeto) Valido() bool {
	switch t {
	case TipoProjetoFixo, TipoDiaria, TipoHora, TipoConsultoria, TipoLongoPrazo:
		return true
	}
	return false
}

type Projeto struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CriadoPorID uuid.UUID `gorm:"type:uuid;not null;index" json:"criadoPorId"`

	Titulo               string                      `gorm:"type:varchar(200);not null" json:"titulo"`
	Descricao            string                      `gorm:"type:text;not null" json:"descricao"`
	HabilidadesDesejadas datatypes.JSONSlice[string] `json:"habilidadesDesejadas"`
	Tipo                 TipoProjeto                 `gorm:"type:varchar(30);not null" json:"tipo"`
	Status               StatusProjeto               `gorm:"type:varchar(20);not null;default:'ABERTO';index" json:"status"`
	OrcamentoEstimado    string                      `gorm:"type:varchar(100)" json:"orcamentoEstimado,omitempty"`
	PrazoEstimado        string                      `gorm:"type:varchar(100)" json:"prazoEstimado,omitempty"`
	Remoto               bool                        `gorm:"default:true" json:"remoto"`

	DataPublicacao time.Time `gorm:"autoCreateTime" json:"dataPublicacao"`
	UpdatedAt      time.Time `json:"updatedAt"`

	CriadoPor *Usuario   `gorm:"foreignKey:CriadoPorID" json:"criadoPor,omitempty"`
	Propostas []Proposta `gorm:"foreignKey:ProjetoID" json:"propostas,omitempty"`
}
