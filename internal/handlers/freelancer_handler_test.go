package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unifreela/api/internal/models"
)

func habilidades(nomes ...string) []models.Habilidade {
	out := make([]models.Habilidade, 0, len(nomes))
	for _, n := range nomes {
		out = append(out, models.Habilidade{Nome: n})
	}
	return out
}

func TestLimitaHabilidadesPorCurriculo(t *testing.T) {
	curriculos := []models.Curriculo{
		{Habilidades: habilidades("Go", "SQL", "Docker", "React", "Node", "AWS", "K8s")},
		{Habilidades: habilidades("Figma")},
		{},
	}

	limitaHabilidades(curriculos, 5)

	// O corte vale para cada cartão, não para a página inteira.
	assert.Len(t, curriculos[0].Habilidades, 5)
	assert.Equal(t, "Go", curriculos[0].Habilidades[0].Nome)
	assert.Equal(t, "Node", curriculos[0].Habilidades[4].Nome)
	assert.Len(t, curriculos[1].Habilidades, 1)
	assert.Empty(t, curriculos[2].Habilidades)
}
