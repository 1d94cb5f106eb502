package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropostaPodeTransicionar(t *testing.T) {
	casos := []struct {
		nome  string
		atual StatusProposta
		alvo  StatusProposta
		quer  bool
	}{
		{"enviada para negociacao", PropostaEnviada, PropostaEmNegociacao, true},
		{"enviada para aceita", PropostaEnviada, PropostaAceita, true},
		{"enviada para recusada", PropostaEnviada, PropostaRecusada, true},
		{"negociacao para aceita", PropostaEmNegociacao, PropostaAceita, true},
		{"negociacao para recusada", PropostaEmNegociacao, PropostaRecusada, true},
		{"negociacao para negociacao", PropostaEmNegociacao, PropostaEmNegociacao, false},
		{"enviada para enviada", PropostaEnviada, PropostaEnviada, false},
		{"aceita e terminal", PropostaAceita, PropostaRecusada, false},
		{"recusada e terminal", PropostaRecusada, PropostaAceita, false},
		{"nao volta para enviada", PropostaEmNegociacao, PropostaEnviada, false},
		{"alvo invalido", PropostaEnviada, StatusProposta("QUALQUER"), false},
	}

	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			p := Proposta{Status: tc.atual}
			assert.Equal(t, tc.quer, p.PodeTransicionar(tc.alvo))
		})
	}
}

func TestPropostaPodeCancelar(t *testing.T) {
	assert.True(t, (&Proposta{Status: PropostaEnviada}).PodeCancelar())
	assert.True(t, (&Proposta{Status: PropostaEmNegociacao}).PodeCancelar())
	assert.False(t, (&Proposta{Status: PropostaAceita}).PodeCancelar())
	assert.False(t, (&Proposta{Status: PropostaRecusada}).PodeCancelar())
}

func TestStatusPropostaValido(t *testing.T) {
	assert.True(t, PropostaEnviada.Valido())
	assert.True(t, PropostaAceita.Valido())
	assert.False(t, StatusProposta("PENDENTE").Valido())
}
