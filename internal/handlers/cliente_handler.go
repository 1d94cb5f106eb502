package handlers

import (
	"log"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
)

type ClienteHandler struct {
	DB *gorm.DB
}

func NewClienteHandler(db *gorm.DB) *ClienteHandler {
	return &ClienteHandler{DB: db}
}

var cpfOuCnpjRe = regexp.MustCompile(`^\d{11}$|^\d{14}$`)

type ClientePerfilReq struct {
	NomeFantasia string `json:"nomeFantasia"`
	Descricao    string `json:"descricao"`
	CpfOuCnpj    string `json:"cpfOuCnpj"`
	WebsiteURL   string `json:"websiteUrl"`
	Localizacao  string `json:"localizacao"`
}

// Perfil devolve o perfil de cliente do usuário, criando um esqueleto na
// primeira visita (mesmo comportamento do perfil lazy do freelancer).
func (h *ClienteHandler) Perfil(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var cliente models.Cliente
	err = h.DB.Where("usuario_id = ?", uid).First(&cliente).Error
	if err == gorm.ErrRecordNotFound {
		cliente = models.Cliente{
			UsuarioID:    uid,
			NomeFantasia: "Meu negócio",
		}
		err = h.DB.Create(&cliente).Error
	}
	if err != nil {
		log.Println("Erro ao carregar perfil do cliente:", err)
		return erroServidor(c, "Não foi possível carregar o perfil.")
	}

	return ok(c, cliente)
}

// Atualizar faz o upsert do perfil de cliente com validação de campos.
func (h *ClienteHandler) Atualizar(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req ClientePerfilReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	nomeFantasia := strings.TrimSpace(req.NomeFantasia)
	cpfOuCnpj := strings.TrimSpace(req.CpfOuCnpj)

	errs := FieldErrors{}
	if len(nomeFantasia) < 3 {
		errs.Add("nomeFantasia", "Informe o nome fantasia ou identificação do cliente.")
	}
	if len(req.Descricao) > 2000 {
		errs.Add("descricao", "A descrição não pode exceder 2000 caracteres.")
	}
	if cpfOuCnpj != "" && !cpfOuCnpjRe.MatchString(cpfOuCnpj) {
		errs.Add("cpfOuCnpj", "Informe apenas números do CPF ou CNPJ.")
	}
	if req.WebsiteURL != "" && !strings.HasPrefix(req.WebsiteURL, "http://") && !strings.HasPrefix(req.WebsiteURL, "https://") {
		errs.Add("websiteUrl", "URL do website inválida.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var cliente models.Cliente
	err = h.DB.Where("usuario_id = ?", uid).First(&cliente).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Println("Erro ao buscar perfil do cliente:", err)
		return erroServidor(c, "Não foi possível salvar o perfil.")
	}

	cliente.UsuarioID = uid
	cliente.NomeFantasia = nomeFantasia
	cliente.Descricao = req.Descricao
	cliente.CpfOuCnpj = cpfOuCnpj
	cliente.WebsiteURL = req.WebsiteURL
	cliente.Localizacao = req.Localizacao

	if err := h.DB.Save(&cliente).Error; err != nil {
		log.Println("Erro ao salvar perfil do cliente:", err)
		return erroServidor(c, "Não foi possível salvar o perfil.")
	}

	return ok(c, cliente)
}

// Dashboard devolve o resumo de contratante: nome/descrição do perfil e as
// contagens de projetos e propostas. Admin enxerga os totais da plataforma.
func (h *ClienteHandler) Dashboard(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}
	admin := isAdmin(c)

	var usuario models.Usuario
	if err := h.DB.
		Preload("PerfilCliente").
		First(&usuario, "id = ?", uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, "Usuário não encontrado.")
		}
		log.Println("Erro no dashboard do cliente:", err)
		return erroServidor(c, "Não foi possível carregar o dashboard.")
	}

	if !admin && usuario.PerfilCliente == nil {
		return erroDominio(c, "Complete seu perfil de cliente para acessar o dashboard.")
	}

	var projetosAbertos, propostasRecebidas, propostasEmNegociacao, propostasAceitas int64
	if admin {
		h.DB.Model(&models.Projeto{}).Where("status = ?", models.ProjetoAberto).Count(&projetosAbertos)
		h.DB.Model(&models.Proposta{}).Count(&propostasRecebidas)
		h.DB.Model(&models.Proposta{}).Where("status = ?", models.PropostaEmNegociacao).Count(&propostasEmNegociacao)
		h.DB.Model(&models.Proposta{}).Where("status = ?", models.PropostaAceita).Count(&propostasAceitas)
	} else {
		h.DB.Model(&models.Projeto{}).
			Where("criado_por_id = ? AND status = ?", uid, models.ProjetoAberto).
			Count(&projetosAbertos)

		recebidas := h.DB.Model(&models.Proposta{}).
			Joins("JOIN projetos ON projetos.id = propostas.projeto_id").
			Where("projetos.criado_por_id = ?", uid)
		recebidas.Count(&propostasRecebidas)

		h.DB.Model(&models.Proposta{}).
			Joins("JOIN projetos ON projetos.id = propostas.projeto_id").
			Where("projetos.criado_por_id = ? AND propostas.status = ?", uid, models.PropostaEmNegociacao).
			Count(&propostasEmNegociacao)
		h.DB.Model(&models.Proposta{}).
			Joins("JOIN projetos ON projetos.id = propostas.projeto_id").
			Where("projetos.criado_por_id = ? AND propostas.status = ?", uid, models.PropostaAceita).
			Count(&propostasAceitas)
	}

	clienteNome := "Painel Administrativo"
	clienteDescricao := "Resumo geral da plataforma."
	if !admin {
		clienteNome = usuario.PerfilCliente.NomeFantasia
		clienteDescricao = usuario.PerfilCliente.Descricao
	}

	return ok(c, fiber.Map{
		"clienteNome":                clienteNome,
		"clienteDescricao":           clienteDescricao,
		"usuarioNome":                usuario.Nome,
		"usuarioEmail":               usuario.Email,
		"totalProjetosAbertos":       projetosAbertos,
		"totalPropostasRecebidas":    propostasRecebidas,
		"totalPropostasEmNegociacao": propostasEmNegociacao,
		"totalPropostasAceitas":      propostasAceitas,
	})
}
