package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
)

type AvaliacaoHandler struct {
	DB *gorm.DB
}

func NewAvaliacaoHandler(db *gorm.DB) *AvaliacaoHandler {
	return &AvaliacaoHandler{DB: db}
}

type AvaliacaoReq struct {
	ProjetoID  string `json:"projetoId"`
	Nota       int    `json:"nota"`
	Comentario string `json:"comentario"`
}

// Criar registra a avaliação de um participante de projeto concluído sobre o
// outro. O cliente avalia o freelancer da proposta aceita e vice-versa.
func (h *AvaliacaoHandler) Criar(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req AvaliacaoReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	projetoID, err := uuid.Parse(req.ProjetoID)
	if err != nil {
		return erroDominio(c, "Projeto inválido.")
	}

	errs := FieldErrors{}
	if req.Nota < 1 || req.Nota > 5 {
		errs.Add("nota", "A nota deve ser entre 1 e 5.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var projeto models.Projeto
	if err := h.DB.Select("id", "criado_por_id", "status").First(&projeto, "id = ?", projetoID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Projeto não encontrado.")
		}
		log.Println("Erro ao buscar projeto:", err)
		return erroServidor(c, "Erro ao registrar avaliação.")
	}

	if projeto.Status != models.ProjetoConcluido {
		return erroDominio(c, "Só é possível avaliar projetos concluídos.")
	}

	var aceita models.Proposta
	if err := h.DB.
		Select("id", "freelancer_id").
		Where("projeto_id = ? AND status = ?", projeto.ID, models.PropostaAceita).
		First(&aceita).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return erroDominio(c, "Este projeto não tem proposta aceita.")
		}
		log.Println("Erro ao buscar proposta aceita:", err)
		return erroServidor(c, "Erro ao registrar avaliação.")
	}

	// Só os dois participantes avaliam, sempre um ao outro.
	var avaliado uuid.UUID
	switch uid {
	case projeto.CriadoPorID:
		avaliado = aceita.FreelancerID
	case aceita.FreelancerID:
		avaliado = projeto.CriadoPorID
	default:
		return acessoNegado(c)
	}

	av := models.Avaliacao{
		ProjetoID:   projeto.ID,
		AvaliadorID: uid,
		AvaliadoID:  avaliado,
		Nota:        req.Nota,
		Comentario:  strings.TrimSpace(req.Comentario),
	}
	if err := h.DB.Create(&av).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "Você já avaliou este projeto.",
			})
		}
		log.Println("Erro ao criar avaliação:", err)
		return erroServidor(c, "Erro ao registrar avaliação.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": av})
}

// ListarDoUsuario devolve as avaliações recebidas por um usuário e a média
// das notas.
func (h *AvaliacaoHandler) ListarDoUsuario(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Usuário não encontrado.")
	}

	var avaliacoes []models.Avaliacao
	err = h.DB.
		Preload("Avaliador", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome", "foto_url")
		}).
		Preload("Projeto", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "titulo")
		}).
		Where("avaliado_id = ?", id).
		Order("created_at DESC").
		Find(&avaliacoes).Error
	if err != nil {
		log.Println("Erro ao listar avaliações:", err)
		return erroServidor(c, "Erro ao buscar avaliações.")
	}

	var media float64
	if len(avaliacoes) > 0 {
		soma := 0
		for _, a := range avaliacoes {
			soma += a.Nota
		}
		media = float64(soma) / float64(len(avaliacoes))
	}

	return ok(c, fiber.Map{
		"avaliacoes": avaliacoes,
		"media":      media,
		"total":      len(avaliacoes),
	})
}
