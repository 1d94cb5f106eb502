package handlers

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
)

type PropostaHandler struct {
	DB *gorm.DB
}

func NewPropostaHandler(db *gorm.DB) *PropostaHandler {
	return &PropostaHandler{DB: db}
}

var (
	valorPropostoRe      = regexp.MustCompile(`^\d+(?:[.,]\d{1,2})?$`)
	errTransicaoInvalida = errors.New("transição de status inválida")
	errNaoAutorizado     = errors.New("sem permissão sobre a proposta")
)

type PropostaReq struct {
	ProjetoID         string `json:"projetoId"`
	Mensagem          string `json:"mensagem"`
	ValorProposto     string `json:"valorProposto"`
	PrazoEstimadoDias int    `json:"prazoEstimadoDias"`
}

// parseValorProposto aceita vírgula ou ponto como separador decimal.
func parseValorProposto(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if !valorPropostoRe.MatchString(raw) {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil || v.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	return v, true
}

// Enviar registra a proposta do freelancer logado em um projeto. Exige
// currículo preenchido e no máximo uma proposta por projeto.
func (h *PropostaHandler) Enviar(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}
	if getRole(c) != models.RoleUser {
		return acessoNegado(c)
	}

	var req PropostaReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	projetoID, err := uuid.Parse(req.ProjetoID)
	if err != nil {
		return erroDominio(c, "Projeto inválido.")
	}

	errs := FieldErrors{}
	if len(strings.TrimSpace(req.Mensagem)) < 10 {
		errs.Add("mensagem", "A mensagem deve ter no mínimo 10 caracteres.")
	}
	valor, valorOK := parseValorProposto(req.ValorProposto)
	if !valorOK {
		errs.Add("valorProposto", "Informe um valor válido, ex: 1500,00.")
	}
	if req.PrazoEstimadoDias <= 0 {
		errs.Add("prazoEstimadoDias", "O prazo deve ser de pelo menos 1 dia.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var curriculo models.Curriculo
	if err := h.DB.Select("id").Where("usuario_id = ?", uid).First(&curriculo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return erroDominio(c, "Complete seu perfil de freelancer para enviar propostas.")
		}
		log.Println("Erro ao verificar currículo:", err)
		return erroServidor(c, "Erro ao enviar proposta.")
	}

	var projeto models.Projeto
	if err := h.DB.Select("id", "criado_por_id", "status").First(&projeto, "id = ?", projetoID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Projeto não encontrado.")
		}
		log.Println("Erro ao buscar projeto:", err)
		return erroServidor(c, "Erro ao enviar proposta.")
	}

	if projeto.CriadoPorID == uid {
		return erroDominio(c, "Você não pode enviar proposta para o seu próprio projeto.")
	}

	proposta := models.Proposta{
		FreelancerID:      uid,
		ProjetoID:         projeto.ID,
		Mensagem:          strings.TrimSpace(req.Mensagem),
		ValorProposto:     valor,
		PrazoEstimadoDias: req.PrazoEstimadoDias,
		Status:            models.PropostaEnviada,
	}
	if err := h.DB.Create(&proposta).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "Você já enviou uma proposta para este projeto.",
			})
		}
		log.Println("Erro ao criar proposta:", err)
		return erroServidor(c, "Erro ao enviar proposta.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": proposta})
}

// MinhasPropostas lista as propostas enviadas pelo freelancer logado, com o
// resumo do projeto. Aceita filtro por status.
func (h *PropostaHandler) MinhasPropostas(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	q := h.DB.Where("freelancer_id = ?", uid)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var propostas []models.Proposta
	err = q.
		Preload("Projeto", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "titulo", "status", "tipo", "criado_por_id")
		}).
		Order("created_at DESC").
		Find(&propostas).Error
	if err != nil {
		log.Println("Erro ao listar propostas do freelancer:", err)
		return erroServidor(c, "Erro ao buscar propostas.")
	}

	return ok(c, fiber.Map{"propostas": propostas})
}

// PropostasDoCliente lista as propostas recebidas nos projetos do usuário
// logado (todas, para o admin), com filtros por status e projeto.
func (h *PropostaHandler) PropostasDoCliente(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}
	admin := isAdmin(c)

	q := h.DB.Model(&models.Proposta{}).
		Joins("JOIN projetos ON projetos.id = propostas.projeto_id")
	if !admin {
		q = q.Where("projetos.criado_por_id = ?", uid)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("propostas.status = ?", status)
	}
	if pid := c.Query("projetoId"); pid != "" {
		projetoID, err := uuid.Parse(pid)
		if err != nil {
			return erroDominio(c, "Projeto inválido.")
		}
		q = q.Where("propostas.projeto_id = ?", projetoID)
	}

	var propostas []models.Proposta
	err = q.
		Preload("Projeto", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "titulo", "status", "criado_por_id")
		}).
		Preload("Freelancer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome", "email", "foto_url")
		}).
		Order("propostas.created_at DESC").
		Find(&propostas).Error
	if err != nil {
		log.Println("Erro ao listar propostas do cliente:", err)
		return erroServidor(c, "Erro ao buscar propostas.")
	}

	return ok(c, fiber.Map{"propostas": propostas})
}

// Detalhes devolve a proposta completa, com o currículo do freelancer.
// Só o autor, o dono do projeto ou o admin podem ver.
func (h *PropostaHandler) Detalhes(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Proposta não encontrada.")
	}

	var proposta models.Proposta
	err = h.DB.
		Preload("Projeto", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "titulo", "descricao", "status", "tipo", "criado_por_id")
		}).
		Preload("Freelancer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome", "email", "foto_url").
				Preload("PerfilFreelancer", func(db *gorm.DB) *gorm.DB {
					return db.
						Preload("Experiencias").
						Preload("Formacoes").
						Preload("Habilidades").
						Preload("Idiomas").
						Preload("Certificacoes").
						Preload("ProjetosPortfolio")
				})
		}).
		First(&proposta, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Proposta não encontrada.")
		}
		log.Println("Erro ao buscar proposta:", err)
		return erroServidor(c, "Erro ao buscar proposta.")
	}

	donoProjeto := proposta.Projeto != nil && proposta.Projeto.CriadoPorID == uid
	if proposta.FreelancerID != uid && !donoProjeto && !isAdmin(c) {
		return acessoNegado(c)
	}

	return ok(c, proposta)
}

type AtualizarStatusPropostaReq struct {
	Status string `json:"status"`
}

// AtualizarStatus muda o status de uma proposta (dono do projeto ou admin).
// ACEITA e RECUSADA são terminais; o alvo precisa ser um estado alcançável a
// partir do atual.
func (h *PropostaHandler) AtualizarStatus(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Proposta não encontrada.")
	}

	var req AtualizarStatusPropostaReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}
	alvo := models.StatusProposta(req.Status)
	if !alvo.Valido() {
		return erroDominio(c, "Status de proposta inválido.")
	}

	var proposta models.Proposta
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Preload("Projeto", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "criado_por_id")
			}).
			First(&proposta, "id = ?", id).Error; err != nil {
			return err
		}

		donoProjeto := proposta.Projeto != nil && proposta.Projeto.CriadoPorID == uid
		if !donoProjeto && !isAdmin(c) {
			return errNaoAutorizado
		}

		if !proposta.PodeTransicionar(alvo) {
			return errTransicaoInvalida
		}

		return tx.Model(&proposta).Update("status", alvo).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Proposta não encontrada.")
		}
		if err == errNaoAutorizado {
			return acessoNegado(c)
		}
		if err == errTransicaoInvalida {
			return erroDominio(c, "Você não pode alterar esta proposta.")
		}
		log.Println("Erro ao atualizar status da proposta:", err)
		return erroServidor(c, "Erro ao atualizar proposta.")
	}

	proposta.Status = alvo
	return ok(c, proposta)
}

// Cancelar exclui a proposta do próprio autor, desde que o cliente ainda não
// a tenha aceitado nem recusado.
func (h *PropostaHandler) Cancelar(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Proposta não encontrada.")
	}

	var proposta models.Proposta
	if err := h.DB.First(&proposta, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Proposta não encontrada.")
		}
		log.Println("Erro ao buscar proposta:", err)
		return erroServidor(c, "Erro ao cancelar proposta.")
	}

	if proposta.FreelancerID != uid {
		return acessoNegado(c)
	}
	if !proposta.PodeCancelar() {
		return erroDominio(c, "Não é possível cancelar esta proposta.")
	}

	if err := h.DB.Delete(&proposta).Error; err != nil {
		log.Println("Erro ao excluir proposta:", err)
		return erroServidor(c, "Erro ao cancelar proposta.")
	}

	return ok(c, fiber.Map{"message": "Proposta cancelada com sucesso."})
}
