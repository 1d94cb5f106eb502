package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StatusProposta string

const (
	PropostaEnviada      StatusProposta = "ENVIADA"
	PropostaEmNegociacao StatusProposta = "EM_NEGOCIACAO"
	PropostaAceita       StatusProposta = "ACEITA"
	PropostaRecusada     StatusProposta = "RECUSADA"
)

func (s StatusProposta) Valido() bool {
	switch s {
	case PropostaEnviada, PropostaEmNegociacao, PropostaAceita, PropostaRecusada:
		return true
	}
	return false
}

// Proposta é o lance de um freelancer em um projeto. Um freelancer pode ter
// no máximo uma proposta por projeto (índice único composto).
type Proposta struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_proposta_freelancer_projeto" json:"freelancerId"`
	ProjetoID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_proposta_freelancer_projeto" json:"projetoId"`

	Mensagem          string          `gorm:"type:text;not null" json:"mensagem"`
	ValorProposto     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorProposto"`
	PrazoEstimadoDias int             `gorm:"not null" json:"prazoEstimadoDias"`
	Status            StatusProposta  `gorm:"type:varchar(20);not null;default:'ENVIADA';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Freelancer *Usuario `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Projeto    *Projeto `gorm:"foreignKey:ProjetoID" json:"projeto,omitempty"`
}

// PodeTransicionar diz se o cliente dono do projeto pode mover a proposta
// para o status alvo. ACEITA e RECUSADA são terminais; o único alvo válido a
// partir de ENVIADA ou EM_NEGOCIACAO é EM_NEGOCIACAO, ACEITA ou RECUSADA.
func (p *Proposta) PodeTransicionar(alvo StatusProposta) bool {
	if p.Status != PropostaEnviada && p.Status != PropostaEmNegociacao {
		return false
	}
	switch alvo {
	case PropostaEmNegociacao, PropostaAceita, PropostaRecusada:
		return alvo != p.Status
	}
	return false
}

// PodeCancelar diz se o autor ainda pode cancelar (excluir) a proposta.
func (p *Proposta) PodeCancelar() bool {
	return p.Status == PropostaEnviada || p.Status == PropostaEmNegociacao
}
