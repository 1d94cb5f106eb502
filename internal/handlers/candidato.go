package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
)

// CandidatoHandler atende os endpoints JSON consumidos pela área do
// candidato (freelancer): dados completos do currículo e o resumo do
// dashboard.
type CandidatoHandler struct {
	DB *gorm.DB
}

func NewCandidatoHandler(db *gorm.DB) *CandidatoHandler {
	return &CandidatoHandler{DB: db}
}

// MeusDados devolve o usuário logado com o currículo completo (todas as
// sub-coleções). O currículo pode não existir ainda; nesse caso vem null.
func (h *CandidatoHandler) MeusDados(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	role := getRole(c)
	if role != models.RoleUser && role != models.RoleAdmin {
		return acessoNegado(c)
	}

	var usuario models.Usuario
	if err := h.DB.Select("id", "nome", "email", "role").First(&usuario, "id = ?", uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Usuário não encontrado.")
		}
		log.Println("Erro em meus-dados:", err)
		return erroServidor(c, "Erro ao buscar dados do candidato.")
	}

	var curriculo models.Curriculo
	err = h.DB.
		Preload("Experiencias").
		Preload("Formacoes").
		Preload("Habilidades").
		Preload("Idiomas").
		Preload("Certificacoes").
		Preload("ProjetosPortfolio").
		Where("usuario_id = ?", uid).
		First(&curriculo).Error

	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Println("Erro ao carregar currículo:", err)
			return erroServidor(c, "Erro ao buscar dados do candidato.")
		}
		return c.JSON(fiber.Map{"usuario": usuario, "curriculo": nil})
	}

	return c.JSON(fiber.Map{"usuario": usuario, "curriculo": curriculo})
}

// DashboardData devolve o resumo do currículo exibido no dashboard do
// candidato: título, links e contagem das seções preenchidas.
func (h *CandidatoHandler) DashboardData(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	role := getRole(c)
	if role != models.RoleUser && role != models.RoleAdmin {
		return acessoNegado(c)
	}

	var curriculo models.Curriculo
	err = h.DB.Where("usuario_id = ?", uid).First(&curriculo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"curriculo": fiber.Map{"temInformacoesPessoais": false}})
		}
		log.Println("Erro no dashboard-data:", err)
		return erroServidor(c, "Erro ao buscar dados do dashboard.")
	}

	var numExperiencias, numFormacoes, numHabilidades int64
	h.DB.Model(&models.ExperienciaProfissional{}).Where("curriculo_id = ?", curriculo.ID).Count(&numExperiencias)
	h.DB.Model(&models.FormacaoAcademica{}).Where("curriculo_id = ?", curriculo.ID).Count(&numFormacoes)
	h.DB.Model(&models.Habilidade{}).Where("curriculo_id = ?", curriculo.ID).Count(&numHabilidades)

	return c.JSON(fiber.Map{
		"curriculo": fiber.Map{
			"id":                     curriculo.ID,
			"tituloCurriculo":        curriculo.TituloProfissional,
			"resumoProfissional":     curriculo.Resumo,
			"linkedinUrl":            curriculo.LinkedinURL,
			"githubUrl":              curriculo.GithubURL,
			"portfolioUrl":           curriculo.PortfolioURL,
			"temInformacoesPessoais": curriculo.TituloProfissional != "",
			"numExperiencias":        numExperiencias,
			"numFormacoes":           numFormacoes,
			"numHabilidades":         numHabilidades,
		},
	})
}
