package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusProjetoValido(t *testing.T) {
	validos := []StatusProjeto{ProjetoRascunho, ProjetoAberto, ProjetoEmAndamento, ProjetoConcluido, ProjetoCancelado}
	for _, s := range validos {
		assert.True(t, s.Valido(), string(s))
	}
	assert.False(t, StatusProjeto("PAUSADO").Valido())
	assert.False(t, StatusProjeto("").Valido())
}

func TestTipoProjetoValido(t *testing.T) {
	validos := []TipoProjeto{TipoProjetoFixo, TipoDiaria, TipoHora, TipoConsultoria, TipoLongoPrazo}
	for _, tp := range validos {
		assert.True(t, tp.Valido(), string(tp))
	}
	assert.False(t, TipoProjeto("FREELA").Valido())
}
