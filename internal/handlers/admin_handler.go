package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
	"github.com/unifreela/api/internal/services/empresa"
	"github.com/unifreela/api/internal/sessions"
	"github.com/unifreela/api/internal/utils"
)

// AdminHandler atende o back-office: gestão de usuários, empresas e os
// números gerais da plataforma. Todas as rotas ficam atrás do RequireRoles
// com ADMIN.
type AdminHandler struct {
	DB       *gorm.DB
	Sessions *sessions.Store
	Empresas *empresa.Service
	// validade máxima de um cookie de sessão; usada no TTL da revogação
	// global quando uma conta é desativada.
	SessaoValidade time.Duration
}

func NewAdminHandler(db *gorm.DB, store *sessions.Store, empresas *empresa.Service, sessaoValidade time.Duration) *AdminHandler {
	return &AdminHandler{DB: db, Sessions: store, Empresas: empresas, SessaoValidade: sessaoValidade}
}

type CriarEmpresaReq struct {
	NomeEmpresa     string `json:"nomeEmpresa"`
	Cnpj            string `json:"cnpj"`
	NomeRecrutador  string `json:"nomeRecrutador"`
	EmailRecrutador string `json:"emailRecrutador"`
	Senha           string `json:"senha"`
}

// CriarEmpresaComRecrutador cria em uma transação o usuário recrutador e o
// perfil de cliente da empresa.
func (h *AdminHandler) CriarEmpresaComRecrutador(c *fiber.Ctx) error {
	var req CriarEmpresaReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	nomeEmpresa := strings.TrimSpace(req.NomeEmpresa)
	cnpj := strings.TrimSpace(req.Cnpj)
	nomeRecrutador := strings.TrimSpace(req.NomeRecrutador)
	email := strings.ToLower(strings.TrimSpace(req.EmailRecrutador))

	errs := FieldErrors{}
	if nomeEmpresa == "" {
		errs.Add("nomeEmpresa", "Informe o nome da empresa.")
	}
	if nomeRecrutador == "" {
		errs.Add("nomeRecrutador", "Informe o nome do recrutador.")
	}
	if email == "" || !strings.Contains(email, "@") {
		errs.Add("emailRecrutador", "Insira um email válido")
	}
	if len(strings.TrimSpace(req.Senha)) < 6 {
		errs.Add("senha", "A senha deve ter no mínimo 6 caracteres")
	}
	if cnpj != "" && !cpfOuCnpjRe.MatchString(cnpj) {
		errs.Add("cnpj", "Informe apenas números do CNPJ.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	hash, err := utils.HashPassword(strings.TrimSpace(req.Senha))
	if err != nil {
		log.Println("Erro ao processar senha:", err)
		return erroServidor(c, "Ocorreu um erro no servidor.")
	}

	var criado *models.Usuario
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		u, err := h.Empresas.CriarComRecrutador(tx, nomeEmpresa, cnpj, nomeRecrutador, email, hash)
		if err != nil {
			return err
		}
		criado = u
		return nil
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "E-mail já cadastrado",
			})
		}
		log.Println("Erro ao criar empresa:", err)
		return erroServidor(c, "Erro ao criar empresa.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": criado})
}

// ListarUsuarios devolve os usuários paginados, com busca por nome ou email.
func (h *AdminHandler) ListarUsuarios(c *fiber.Ctx) error {
	page, limit, offset := paginacao(c)

	q := h.DB.Model(&models.Usuario{})
	if busca := strings.TrimSpace(c.Query("busca")); busca != "" {
		like := "%" + busca + "%"
		q = q.Where("nome ILIKE ? OR email ILIKE ?", like, like)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", strings.ToUpper(role))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("Erro ao contar usuários:", err)
		return erroServidor(c, "Erro ao buscar usuários.")
	}

	var usuarios []models.Usuario
	err := q.
		Select("id", "nome", "email", "role", "ativo", "criado_em").
		Order("criado_em DESC").
		Limit(limit).
		Offset(offset).
		Find(&usuarios).Error
	if err != nil {
		log.Println("Erro ao listar usuários:", err)
		return erroServidor(c, "Erro ao buscar usuários.")
	}

	return ok(c, fiber.Map{
		"usuarios": usuarios,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// ProcurarUsuarios é o autocomplete do back-office: busca por nome ou email
// com no mínimo dois caracteres, limitada a dez resultados.
func (h *AdminHandler) ProcurarUsuarios(c *fiber.Ctx) error {
	termo := strings.TrimSpace(c.Query("q"))
	if len(termo) < 2 {
		return ok(c, fiber.Map{"usuarios": []models.Usuario{}})
	}

	like := "%" + termo + "%"
	var usuarios []models.Usuario
	err := h.DB.
		Select("id", "nome", "email", "role", "ativo").
		Where("nome ILIKE ? OR email ILIKE ?", like, like).
		Order("nome ASC").
		Limit(10).
		Find(&usuarios).Error
	if err != nil {
		log.Println("Erro ao procurar usuários:", err)
		return erroServidor(c, "Erro ao buscar usuários.")
	}

	return ok(c, fiber.Map{"usuarios": usuarios})
}

type EditarUsuarioReq struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *AdminHandler) EditarUsuario(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Usuário não encontrado.")
	}

	var req EditarUsuarioReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	nome := strings.TrimSpace(req.Nome)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := models.RoleUsuario(strings.ToUpper(strings.TrimSpace(req.Role)))

	errs := FieldErrors{}
	if nome == "" {
		errs.Add("nome", "Nome obrigatório")
	}
	if email == "" || !strings.Contains(email, "@") {
		errs.Add("email", "Insira um email válido")
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		errs.Add("role", "Papel inválido.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var u models.Usuario
	if err := h.DB.First(&u, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Usuário não encontrado.")
		}
		log.Println("Erro ao buscar usuário:", err)
		return erroServidor(c, "Erro ao editar usuário.")
	}

	u.Nome = nome
	u.Email = email
	u.Role = role
	if err := h.DB.Save(&u).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "E-mail já cadastrado",
			})
		}
		log.Println("Erro ao salvar usuário:", err)
		return erroServidor(c, "Erro ao editar usuário.")
	}

	return ok(c, u)
}

type MudarSenhaReq struct {
	NovaSenha string `json:"novaSenha"`
}

func (h *AdminHandler) MudarSenha(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Usuário não encontrado.")
	}

	var req MudarSenhaReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}
	senha := strings.TrimSpace(req.NovaSenha)
	if len(senha) < 6 {
		errs := FieldErrors{}
		errs.Add("novaSenha", "A senha deve ter no mínimo 6 caracteres")
		return validationFail(c, errs)
	}

	hash, err := utils.HashPassword(senha)
	if err != nil {
		log.Println("Erro ao processar senha:", err)
		return erroServidor(c, "Ocorreu um erro no servidor.")
	}

	res := h.DB.Model(&models.Usuario{}).Where("id = ?", id).Update("senha", hash)
	if res.Error != nil {
		log.Println("Erro ao mudar senha:", res.Error)
		return erroServidor(c, "Erro ao mudar a senha.")
	}
	if res.RowsAffected == 0 {
		return naoEncontrado(c, "Usuário não encontrado.")
	}

	return ok(c, fiber.Map{"message": "Senha alterada com sucesso."})
}

type AtivarDesativarReq struct {
	Ativo bool `json:"ativo"`
}

// AtivarDesativar liga ou desliga uma conta. Desativar também revoga todas
// as sessões vivas do usuário no Redis.
func (h *AdminHandler) AtivarDesativar(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Usuário não encontrado.")
	}
	if id == uid {
		return erroDominio(c, "Você não pode desativar a própria conta.")
	}

	var req AtivarDesativarReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	res := h.DB.Model(&models.Usuario{}).Where("id = ?", id).Update("ativo", req.Ativo)
	if res.Error != nil {
		log.Println("Erro ao atualizar conta:", res.Error)
		return erroServidor(c, "Erro ao atualizar a conta.")
	}
	if res.RowsAffected == 0 {
		return naoEncontrado(c, "Usuário não encontrado.")
	}

	if h.Sessions != nil {
		if req.Ativo {
			if err := h.Sessions.LiberarUsuario(c.Context(), id.String()); err != nil {
				log.Println("Erro ao liberar sessões do usuário:", err)
			}
		} else {
			if err := h.Sessions.RevogarUsuario(c.Context(), id.String(), h.SessaoValidade); err != nil {
				log.Println("Erro ao revogar sessões do usuário:", err)
			}
		}
	}

	return ok(c, fiber.Map{"id": id, "ativo": req.Ativo})
}

// ExcluirUsuario remove o usuário e tudo que pende dele: perfis, projetos,
// propostas e currículo com sub-coleções.
func (h *AdminHandler) ExcluirUsuario(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Usuário não encontrado.")
	}
	if id == uid {
		return erroDominio(c, "Você não pode excluir a própria conta.")
	}

	var u models.Usuario
	if err := h.DB.First(&u, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Usuário não encontrado.")
		}
		log.Println("Erro ao buscar usuário:", err)
		return erroServidor(c, "Erro ao excluir usuário.")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var cv models.Curriculo
		if err := tx.Select("id").Where("usuario_id = ?", id).First(&cv).Error; err == nil {
			subcolecoes := []interface{}{
				&models.ExperienciaProfissional{},
				&models.FormacaoAcademica{},
				&models.Habilidade{},
				&models.Idioma{},
				&models.Certificacao{},
				&models.ProjetoPortfolio{},
			}
			for _, m := range subcolecoes {
				if err := tx.Where("curriculo_id = ?", cv.ID).Delete(m).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&cv).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := tx.Where("freelancer_id = ?", id).Delete(&models.Proposta{}).Error; err != nil {
			return err
		}
		if err := tx.Where("avaliador_id = ? OR avaliado_id = ?", id, id).Delete(&models.Avaliacao{}).Error; err != nil {
			return err
		}

		// As avaliações e propostas dos projetos saem antes dos projetos,
		// senão as FKs barram o delete.
		var projetoIDs []uuid.UUID
		if err := tx.Model(&models.Projeto{}).Where("criado_por_id = ?", id).Pluck("id", &projetoIDs).Error; err != nil {
			return err
		}
		if len(projetoIDs) > 0 {
			if err := tx.Where("projeto_id IN ?", projetoIDs).Delete(&models.Avaliacao{}).Error; err != nil {
				return err
			}
			if err := tx.Where("projeto_id IN ?", projetoIDs).Delete(&models.Proposta{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", projetoIDs).Delete(&models.Projeto{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("usuario_id = ?", id).Delete(&models.Cliente{}).Error; err != nil {
			return err
		}

		return tx.Delete(&u).Error
	})
	if err != nil {
		log.Println("Erro ao excluir usuário:", err)
		return erroServidor(c, "Erro ao excluir usuário.")
	}

	if h.Sessions != nil {
		if err := h.Sessions.RevogarUsuario(c.Context(), id.String(), h.SessaoValidade); err != nil {
			log.Println("Erro ao revogar sessões do usuário excluído:", err)
		}
	}

	return ok(c, fiber.Map{"message": "Usuário excluído com sucesso."})
}

// ListarEmpresas devolve os perfis de cliente paginados, com o usuário dono.
func (h *AdminHandler) ListarEmpresas(c *fiber.Ctx) error {
	page, limit, offset := paginacao(c)

	q := h.DB.Model(&models.Cliente{})
	if busca := strings.TrimSpace(c.Query("busca")); busca != "" {
		like := "%" + busca + "%"
		q = q.Where("nome_fantasia ILIKE ?", like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("Erro ao contar empresas:", err)
		return erroServidor(c, "Erro ao buscar empresas.")
	}

	var empresas []models.Cliente
	err := q.
		Preload("Usuario", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome", "email", "ativo")
		}).
		Order("nome_fantasia ASC").
		Limit(limit).
		Offset(offset).
		Find(&empresas).Error
	if err != nil {
		log.Println("Erro ao listar empresas:", err)
		return erroServidor(c, "Erro ao buscar empresas.")
	}

	return ok(c, fiber.Map{
		"empresas": empresas,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

type EditarEmpresaReq struct {
	NomeFantasia string `json:"nomeFantasia"`
	CpfOuCnpj    string `json:"cpfOuCnpj"`
	Descricao    string `json:"descricao"`
	WebsiteURL   string `json:"websiteUrl"`
	Localizacao  string `json:"localizacao"`
}

func (h *AdminHandler) EditarEmpresa(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, "Empresa não encontrada.")
	}

	var req EditarEmpresaReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	nomeFantasia := strings.TrimSpace(req.NomeFantasia)
	cpfOuCnpj := strings.TrimSpace(req.CpfOuCnpj)
	errs := FieldErrors{}
	if nomeFantasia == "" {
		errs.Add("nomeFantasia", "Informe o nome fantasia.")
	}
	if cpfOuCnpj != "" && !cpfOuCnpjRe.MatchString(cpfOuCnpj) {
		errs.Add("cpfOuCnpj", "Informe apenas números do CPF ou CNPJ.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var cliente models.Cliente
	if err := h.DB.First(&cliente, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Empresa não encontrada.")
		}
		log.Println("Erro ao buscar empresa:", err)
		return erroServidor(c, "Erro ao editar empresa.")
	}

	cliente.NomeFantasia = nomeFantasia
	cliente.CpfOuCnpj = cpfOuCnpj
	cliente.Descricao = req.Descricao
	cliente.WebsiteURL = strings.TrimSpace(req.WebsiteURL)
	cliente.Localizacao = strings.TrimSpace(req.Localizacao)

	if err := h.DB.Save(&cliente).Error; err != nil {
		log.Println("Erro ao salvar empresa:", err)
		return erroServidor(c, "Erro ao editar empresa.")
	}

	return ok(c, cliente)
}

// Stats devolve os números do painel: totais de usuários, empresas,
// projetos por status e propostas.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var totalUsuarios, totalEmpresas, totalFreelancers int64
	var totalProjetos, projetosAbertos, totalPropostas int64

	h.DB.Model(&models.Usuario{}).Count(&totalUsuarios)
	h.DB.Model(&models.Cliente{}).Count(&totalEmpresas)
	h.DB.Model(&models.Curriculo{}).Count(&totalFreelancers)
	h.DB.Model(&models.Projeto{}).Count(&totalProjetos)
	h.DB.Model(&models.Projeto{}).Where("status = ?", models.ProjetoAberto).Count(&projetosAbertos)
	h.DB.Model(&models.Proposta{}).Count(&totalPropostas)

	return ok(c, fiber.Map{
		"totalUsuarios":    totalUsuarios,
		"totalEmpresas":    totalEmpresas,
		"totalFreelancers": totalFreelancers,
		"totalProjetos":    totalProjetos,
		"projetosAbertos":  projetosAbertos,
		"totalPropostas":   totalPropostas,
	})
}
