package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
	"github.com/unifreela/api/internal/utils"
)

type ProjetoHandler struct {
	DB *gorm.DB
}

func NewProjetoHandler(db *gorm.DB) *ProjetoHandler {
	return &ProjetoHandler{DB: db}
}

type ProjetoReq struct {
	ID                   string `json:"id"`
	Titulo               string `json:"titulo"`
	Descricao            string `json:"descricao"`
	HabilidadesDesejadas string `json:"habilidadesDesejadas"`
	Tipo                 string `json:"tipo"`
	Status               string `json:"status"`
	OrcamentoEstimado    string `json:"orcamentoEstimado"`
	PrazoEstimado        string `json:"prazoEstimado"`
	Remoto               *bool  `json:"remoto"`
}

// ListarDisponiveis devolve os projetos ABERTO paginados, mais recentes
// primeiro, com o resumo do cliente que os publicou.
func (h *ProjetoHandler) ListarDisponiveis(c *fiber.Ctx) error {
	page, limit, offset := paginacao(c)

	q := h.DB.Model(&models.Projeto{}).Where("status = ?", models.ProjetoAberto)

	if busca := strings.TrimSpace(c.Query("busca")); busca != "" {
		like := "%" + busca + "%"
		q = q.Where("titulo ILIKE ? OR descricao ILIKE ?", like, like)
	}
	if tipo := c.Query("tipo"); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("Erro ao contar projetos:", err)
		return erroServidor(c, "Erro ao buscar projetos.")
	}

	var projetos []models.Projeto
	err := q.
		Preload("CriadoPor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome").Preload("PerfilCliente", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "usuario_id", "nome_fantasia", "localizacao")
			})
		}).
		Order("data_publicacao DESC").
		Limit(limit).
		Offset(offset).
		Find(&projetos).Error
	if err != nil {
		log.Println("Erro ao listar projetos:", err)
		return erroServidor(c, "Erro ao buscar projetos.")
	}

	return ok(c, fiber.Map{
		"projetos": projetos,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// Detalhes devolve um projeto pelo id, com os dados do cliente.
func (h *ProjetoHandler) Detalhes(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Projeto não encontrado.")
	}

	var projeto models.Projeto
	err = h.DB.
		Preload("CriadoPor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome").Preload("PerfilCliente")
		}).
		First(&projeto, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Projeto não encontrado.")
		}
		log.Println("Erro ao buscar projeto:", err)
		return erroServidor(c, "Erro ao buscar projeto.")
	}

	var totalPropostas int64
	h.DB.Model(&models.Proposta{}).Where("projeto_id = ?", projeto.ID).Count(&totalPropostas)

	return ok(c, fiber.Map{
		"projeto":        projeto,
		"totalPropostas": totalPropostas,
	})
}

// ListarDoCliente devolve os projetos do usuário logado (todos, para o
// admin), com a contagem de propostas de cada um.
func (h *ProjetoHandler) ListarDoCliente(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}
	admin := isAdmin(c)

	if !admin {
		var cliente models.Cliente
		if err := h.DB.Select("id").Where("usuario_id = ?", uid).First(&cliente).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return erroDominio(c, "Complete seu perfil de cliente para gerenciar projetos.")
			}
			log.Println("Erro ao verificar perfil do cliente:", err)
			return erroServidor(c, "Erro ao buscar projetos.")
		}
	}

	page, limit, offset := paginacao(c)

	q := h.DB.Model(&models.Projeto{})
	if !admin {
		q = q.Where("criado_por_id = ?", uid)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("Erro ao contar projetos do cliente:", err)
		return erroServidor(c, "Erro ao buscar projetos.")
	}

	var projetos []models.Projeto
	if err := q.Order("data_publicacao DESC").Limit(limit).Offset(offset).Find(&projetos).Error; err != nil {
		log.Println("Erro ao listar projetos do cliente:", err)
		return erroServidor(c, "Erro ao buscar projetos.")
	}

	type projetoComContagem struct {
		models.Projeto
		TotalPropostas int64 `json:"totalPropostas"`
	}
	out := make([]projetoComContagem, 0, len(projetos))
	for _, p := range projetos {
		var n int64
		h.DB.Model(&models.Proposta{}).Where("projeto_id = ?", p.ID).Count(&n)
		out = append(out, projetoComContagem{Projeto: p, TotalPropostas: n})
	}

	return ok(c, fiber.Map{
		"projetos": out,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *ProjetoHandler) validar(req *ProjetoReq) FieldErrors {
	errs := FieldErrors{}
	if len(strings.TrimSpace(req.Titulo)) < 5 {
		errs.Add("titulo", "O título deve ter no mínimo 5 caracteres.")
	}
	if len(strings.TrimSpace(req.Descricao)) < 20 {
		errs.Add("descricao", "A descrição deve ter no mínimo 20 caracteres.")
	}
	if !models.TipoProjeto(req.Tipo).Valido() {
		errs.Add("tipo", "Tipo de projeto inválido.")
	}
	if req.Status != "" && !models.StatusProjeto(req.Status).Valido() {
		errs.Add("status", "Status de projeto inválido.")
	}
	return errs
}

// Salvar cria (POST) ou atualiza (PUT /:id) um projeto. Criação exige
// perfil de cliente; edição exige ser o dono ou admin.
func (h *ProjetoHandler) Salvar(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}
	admin := isAdmin(c)

	var req ProjetoReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}
	if errs := h.validar(&req); len(errs) > 0 {
		return validationFail(c, errs)
	}

	// id no path (PUT) ou no corpo (POST de edição): qualquer um vale.
	var projeto models.Projeto
	idParam := c.Params("id")
	if idParam == "" {
		idParam = strings.TrimSpace(req.ID)
	}
	criando := idParam == ""

	if criando {
		if !admin {
			var cliente models.Cliente
			if err := h.DB.Select("id").Where("usuario_id = ?", uid).First(&cliente).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return erroDominio(c, "Complete seu perfil de cliente para publicar projetos.")
				}
				log.Println("Erro ao verificar perfil do cliente:", err)
				return erroServidor(c, "Erro ao salvar projeto.")
			}
		}
		projeto.CriadoPorID = uid
		projeto.Status = models.ProjetoAberto
	} else {
		id, err := uuid.Parse(idParam)
		if err != nil {
			return naoEncontrado(c, "Projeto não encontrado.")
		}
		if err := h.DB.First(&projeto, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return naoEncontrado(c, "Projeto não encontrado.")
			}
			log.Println("Erro ao buscar projeto:", err)
			return erroServidor(c, "Erro ao salvar projeto.")
		}
		if projeto.CriadoPorID != uid && !admin {
			return acessoNegado(c)
		}
	}

	projeto.Titulo = strings.TrimSpace(req.Titulo)
	projeto.Descricao = strings.TrimSpace(req.Descricao)
	projeto.HabilidadesDesejadas = datatypes.JSONSlice[string](utils.SplitHabilidades(req.HabilidadesDesejadas))
	projeto.Tipo = models.TipoProjeto(req.Tipo)
	projeto.OrcamentoEstimado = strings.TrimSpace(req.OrcamentoEstimado)
	projeto.PrazoEstimado = strings.TrimSpace(req.PrazoEstimado)
	if req.Remoto != nil {
		projeto.Remoto = *req.Remoto
	} else if criando {
		projeto.Remoto = true
	}
	if req.Status != "" {
		projeto.Status = models.StatusProjeto(req.Status)
	}

	if err := h.DB.Save(&projeto).Error; err != nil {
		log.Println("Erro ao salvar projeto:", err)
		return erroServidor(c, "Erro ao salvar projeto.")
	}

	status := fiber.StatusOK
	if criando {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": projeto})
}

// ParaEdicao devolve o projeto no formato do formulário de edição, com as
// habilidades como string separada por vírgula.
func (h *ProjetoHandler) ParaEdicao(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Projeto não encontrado.")
	}

	var projeto models.Projeto
	if err := h.DB.First(&projeto, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Projeto não encontrado.")
		}
		log.Println("Erro ao buscar projeto para edição:", err)
		return erroServidor(c, "Erro ao buscar projeto.")
	}
	if projeto.CriadoPorID != uid && !isAdmin(c) {
		return acessoNegado(c)
	}

	return ok(c, fiber.Map{
		"id":                   projeto.ID,
		"titulo":               projeto.Titulo,
		"descricao":            projeto.Descricao,
		"habilidadesDesejadas": utils.JoinHabilidades(projeto.HabilidadesDesejadas),
		"tipo":                 projeto.Tipo,
		"status":               projeto.Status,
		"orcamentoEstimado":    projeto.OrcamentoEstimado,
		"prazoEstimado":        projeto.PrazoEstimado,
		"remoto":               projeto.Remoto,
	})
}

type AlterarStatusProjetoReq struct {
	Status string `json:"status"`
}

// AlterarStatus muda só o status de um projeto (dono ou admin).
func (h *ProjetoHandler) AlterarStatus(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Projeto não encontrado.")
	}

	var req AlterarStatusProjetoReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}
	novo := models.StatusProjeto(req.Status)
	if !novo.Valido() {
		return erroDominio(c, "Status de projeto inválido.")
	}

	var projeto models.Projeto
	if err := h.DB.First(&projeto, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Projeto não encontrado.")
		}
		log.Println("Erro ao buscar projeto:", err)
		return erroServidor(c, "Erro ao atualizar projeto.")
	}
	if projeto.CriadoPorID != uid && !isAdmin(c) {
		return acessoNegado(c)
	}

	if err := h.DB.Model(&projeto).Update("status", novo).Error; err != nil {
		log.Println("Erro ao atualizar status do projeto:", err)
		return erroServidor(c, "Erro ao atualizar projeto.")
	}

	projeto.Status = novo
	return ok(c, projeto)
}

// Excluir remove um projeto e suas propostas (dono ou admin).
func (h *ProjetoHandler) Excluir(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Projeto não encontrado.")
	}

	var projeto models.Projeto
	if err := h.DB.First(&projeto, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Projeto não encontrado.")
		}
		log.Println("Erro ao buscar projeto:", err)
		return erroServidor(c, "Erro ao excluir projeto.")
	}
	if projeto.CriadoPorID != uid && !isAdmin(c) {
		return acessoNegado(c)
	}

	// Filhos primeiro, as FKs de avaliação e proposta apontam para o projeto.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("projeto_id = ?", projeto.ID).Delete(&models.Avaliacao{}).Error; err != nil {
			return err
		}
		if err := tx.Where("projeto_id = ?", projeto.ID).Delete(&models.Proposta{}).Error; err != nil {
			return err
		}
		return tx.Delete(&projeto).Error
	})
	if err != nil {
		log.Println("Erro ao excluir projeto:", err)
		return erroServidor(c, "Erro ao excluir projeto.")
	}

	return ok(c, fiber.Map{"message": "Projeto excluído com sucesso."})
}
