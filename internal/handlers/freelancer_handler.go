package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
)

// FreelancerHandler atende o diretório público de freelancers.
type FreelancerHandler struct {
	DB *gorm.DB
}

func NewFreelancerHandler(db *gorm.DB) *FreelancerHandler {
	return &FreelancerHandler{DB: db}
}

// limitaHabilidades corta cada currículo para as n primeiras habilidades.
func limitaHabilidades(curriculos []models.Curriculo, n int) {
	for i := range curriculos {
		if len(curriculos[i].Habilidades) > n {
			curriculos[i].Habilidades = curriculos[i].Habilidades[:n]
		}
	}
}

// Listar devolve os currículos com Disponivel=true, paginados, com o resumo
// do usuário e até cinco habilidades por cartão.
func (h *FreelancerHandler) Listar(c *fiber.Ctx) error {
	page, limit, offset := paginacao(c)

	q := h.DB.Model(&models.Curriculo{}).
		Joins("JOIN usuarios ON usuarios.id = curriculos.usuario_id AND usuarios.ativo = true").
		Where("disponivel = ?", true)

	if busca := c.Query("busca"); busca != "" {
		like := "%" + busca + "%"
		q = q.Where("titulo_profissional ILIKE ? OR resumo ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("Erro ao contar freelancers:", err)
		return erroServidor(c, "Erro ao buscar freelancers.")
	}

	var curriculos []models.Curriculo
	err := q.
		Preload("Usuario", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome", "foto_url")
		}).
		Preload("Habilidades").
		Order("curriculos.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&curriculos).Error
	if err != nil {
		log.Println("Erro ao listar freelancers:", err)
		return erroServidor(c, "Erro ao buscar freelancers.")
	}

	// Um Limit no preload valeria para a página inteira, não por currículo.
	limitaHabilidades(curriculos, 5)

	return ok(c, fiber.Map{
		"freelancers": curriculos,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

// Detalhes devolve o currículo público completo de um freelancer, com as
// sub-coleções ordenadas (mais recentes primeiro).
func (h *FreelancerHandler) Detalhes(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Freelancer não encontrado.")
	}

	var cv models.Curriculo
	err = h.DB.
		Preload("Usuario", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome", "foto_url", "criado_em")
		}).
		Preload("Experiencias", func(db *gorm.DB) *gorm.DB {
			return db.Order("data_inicio DESC")
		}).
		Preload("Formacoes", func(db *gorm.DB) *gorm.DB {
			return db.Order("data_inicio DESC")
		}).
		Preload("Habilidades", func(db *gorm.DB) *gorm.DB {
			return db.Order("nome ASC")
		}).
		Preload("Idiomas").
		Preload("Certificacoes", func(db *gorm.DB) *gorm.DB {
			return db.Order("data_emissao DESC")
		}).
		Preload("ProjetosPortfolio", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&cv, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Freelancer não encontrado.")
		}
		log.Println("Erro ao buscar freelancer:", err)
		return erroServidor(c, "Erro ao buscar freelancer.")
	}

	if cv.Usuario == nil {
		return naoEncontrado(c, "Freelancer não encontrado.")
	}

	return ok(c, cv)
}
