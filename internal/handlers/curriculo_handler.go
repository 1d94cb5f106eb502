package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
	"github.com/unifreela/api/internal/utils"
)

// CurriculoHandler atende o CRUD do currículo e de todas as sub-coleções
// (experiências, formações, habilidades, idiomas, certificações e projetos
// de portfólio). Todas as rotas operam sobre o currículo do usuário logado.
type CurriculoHandler struct {
	DB *gorm.DB
}

func NewCurriculoHandler(db *gorm.DB) *CurriculoHandler {
	return &CurriculoHandler{DB: db}
}

// curriculoDoUsuario devolve o currículo do usuário, criando um esqueleto na
// primeira chamada.
func (h *CurriculoHandler) curriculoDoUsuario(uid uuid.UUID) (*models.Curriculo, error) {
	var cv models.Curriculo
	err := h.DB.Where("usuario_id = ?", uid).First(&cv).Error
	if err == gorm.ErrRecordNotFound {
		cv = models.Curriculo{
			UsuarioID:          uid,
			TituloProfissional: "Meu Currículo",
		}
		err = h.DB.Create(&cv).Error
	}
	if err != nil {
		return nil, err
	}
	return &cv, nil
}

// parseMesAno interpreta datas de formulário no formato YYYY-MM, ancoradas no
// primeiro dia do mês.
func parseMesAno(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseMesAnoOpcional(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	t, ok := parseMesAno(s)
	if !ok {
		return nil, false
	}
	return &t, true
}

type InformacoesPessoaisReq struct {
	TituloProfissional string `json:"tituloProfissional"`
	Resumo             string `json:"resumo"`
	ValorHora          string `json:"valorHora"`
	PortfolioURL       string `json:"portfolioUrl"`
	GithubURL          string `json:"githubUrl"`
	LinkedinURL        string `json:"linkedinUrl"`
	Disponivel         *bool  `json:"disponivel"`
}

// SalvarInformacoesPessoais atualiza o cabeçalho do currículo.
func (h *CurriculoHandler) SalvarInformacoesPessoais(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req InformacoesPessoaisReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	titulo := strings.TrimSpace(req.TituloProfissional)
	errs := FieldErrors{}
	if len(titulo) < 3 {
		errs.Add("tituloProfissional", "Informe seu título profissional.")
	}

	var valorHora decimal.NullDecimal
	if raw := strings.TrimSpace(req.ValorHora); raw != "" {
		v, ok := parseValorProposto(raw)
		if !ok {
			errs.Add("valorHora", "Informe um valor por hora válido, ex: 80,00.")
		} else {
			valorHora = decimal.NewNullDecimal(v)
		}
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	cv, err := h.curriculoDoUsuario(uid)
	if err != nil {
		log.Println("Erro ao carregar currículo:", err)
		return erroServidor(c, "Erro ao salvar informações pessoais.")
	}

	cv.TituloProfissional = titulo
	cv.Resumo = req.Resumo
	cv.ValorHora = valorHora
	cv.PortfolioURL = strings.TrimSpace(req.PortfolioURL)
	cv.GithubURL = strings.TrimSpace(req.GithubURL)
	cv.LinkedinURL = strings.TrimSpace(req.LinkedinURL)
	if req.Disponivel != nil {
		cv.Disponivel = *req.Disponivel
	}

	if err := h.DB.Save(cv).Error; err != nil {
		log.Println("Erro ao salvar currículo:", err)
		return erroServidor(c, "Erro ao salvar informações pessoais.")
	}

	return ok(c, cv)
}

type ExperienciaReq struct {
	Cargo      string `json:"cargo"`
	Empresa    string `json:"empresa"`
	Local      string `json:"local"`
	Descricao  string `json:"descricao"`
	DataInicio string `json:"dataInicio"`
	DataFim    string `json:"dataFim"`
	Atual      bool   `json:"atual"`
}

// SalvarExperiencia cria (POST) ou atualiza (PUT /:id) uma experiência
// profissional do currículo do usuário.
func (h *CurriculoHandler) SalvarExperiencia(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req ExperienciaReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	errs := FieldErrors{}
	if strings.TrimSpace(req.Cargo) == "" {
		errs.Add("cargo", "Informe o cargo.")
	}
	if strings.TrimSpace(req.Empresa) == "" {
		errs.Add("empresa", "Informe a empresa.")
	}
	inicio, okInicio := parseMesAno(req.DataInicio)
	if !okInicio {
		errs.Add("dataInicio", "Informe a data de início no formato AAAA-MM.")
	}
	fim, okFim := parseMesAnoOpcional(req.DataFim)
	if !okFim {
		errs.Add("dataFim", "Data de término inválida.")
	}
	if req.Atual {
		fim = nil
	} else if fim == nil {
		errs.Add("dataFim", "Informe a data de término ou marque como atual.")
	}
	if okInicio && fim != nil && fim.Before(inicio) {
		errs.Add("dataFim", "A data de término não pode ser anterior ao início.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	cv, err := h.curriculoDoUsuario(uid)
	if err != nil {
		log.Println("Erro ao carregar currículo:", err)
		return erroServidor(c, "Erro ao salvar experiência.")
	}

	var exp models.ExperienciaProfissional
	criando := c.Params("id") == ""
	if !criando {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return naoEncontrado(c, "Experiência não encontrada.")
		}
		if err := h.DB.Where("id = ? AND curriculo_id = ?", id, cv.ID).First(&exp).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return naoEncontrado(c, "Experiência não encontrada.")
			}
			log.Println("Erro ao buscar experiência:", err)
			return erroServidor(c, "Erro ao salvar experiência.")
		}
	}

	exp.CurriculoID = cv.ID
	exp.Cargo = strings.TrimSpace(req.Cargo)
	exp.Empresa = strings.TrimSpace(req.Empresa)
	exp.Local = strings.TrimSpace(req.Local)
	exp.Descricao = req.Descricao
	exp.DataInicio = inicio
	exp.DataFim = fim
	exp.Atual = req.Atual

	if err := h.DB.Save(&exp).Error; err != nil {
		log.Println("Erro ao salvar experiência:", err)
		return erroServidor(c, "Erro ao salvar experiência.")
	}

	status := fiber.StatusOK
	if criando {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": exp})
}

func (h *CurriculoHandler) ExcluirExperiencia(c *fiber.Ctx) error {
	return h.excluirItem(c, &models.ExperienciaProfissional{}, "Experiência não encontrada.")
}

type FormacaoReq struct {
	Instituicao string `json:"instituicao"`
	Curso       string `json:"curso"`
	AreaEstudo  string `json:"areaEstudo"`
	Descricao   string `json:"descricao"`
	DataInicio  string `json:"dataInicio"`
	DataFim     string `json:"dataFim"`
	Concluido   bool   `json:"concluido"`
}

func (h *CurriculoHandler) SalvarFormacao(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req FormacaoReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	errs := FieldErrors{}
	if strings.TrimSpace(req.Instituicao) == "" {
		errs.Add("instituicao", "Informe a instituição.")
	}
	if strings.TrimSpace(req.Curso) == "" {
		errs.Add("curso", "Informe o curso.")
	}
	inicio, okInicio := parseMesAno(req.DataInicio)
	if !okInicio {
		errs.Add("dataInicio", "Informe a data de início no formato AAAA-MM.")
	}
	fim, okFim := parseMesAnoOpcional(req.DataFim)
	if !okFim {
		errs.Add("dataFim", "Data de término inválida.")
	}
	if okInicio && fim != nil && fim.Before(inicio) {
		errs.Add("dataFim", "A data de término não pode ser anterior ao início.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	cv, err := h.curriculoDoUsuario(uid)
	if err != nil {
		log.Println("Erro ao carregar currículo:", err)
		return erroServidor(c, "Erro ao salvar formação.")
	}

	var f models.FormacaoAcademica
	criando := c.Params("id") == ""
	if !criando {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return naoEncontrado(c, "Formação não encontrada.")
		}
		if err := h.DB.Where("id = ? AND curriculo_id = ?", id, cv.ID).First(&f).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return naoEncontrado(c, "Formação não encontrada.")
			}
			log.Println("Erro ao buscar formação:", err)
			return erroServidor(c, "Erro ao salvar formação.")
		}
	}

	f.CurriculoID = cv.ID
	f.Instituicao = strings.TrimSpace(req.Instituicao)
	f.Curso = strings.TrimSpace(req.Curso)
	f.AreaEstudo = strings.TrimSpace(req.AreaEstudo)
	f.Descricao = req.Descricao
	f.DataInicio = inicio
	f.DataFim = fim
	f.Concluido = req.Concluido

	if err := h.DB.Save(&f).Error; err != nil {
		log.Println("Erro ao salvar formação:", err)
		return erroServidor(c, "Erro ao salvar formação.")
	}

	status := fiber.StatusOK
	if criando {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": f})
}

func (h *CurriculoHandler) ExcluirFormacao(c *fiber.Ctx) error {
	return h.excluirItem(c, &models.FormacaoAcademica{}, "Formação não encontrada.")
}

type HabilidadeReq struct {
	Nome string `json:"nome"`
}

// AdicionarHabilidade cadastra uma habilidade, ignorando duplicatas por nome
// (comparação sem diferenciar maiúsculas).
func (h *CurriculoHandler) AdicionarHabilidade(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req HabilidadeReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}
	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		errs := FieldErrors{}
		errs.Add("nome", "Informe a habilidade.")
		return validationFail(c, errs)
	}

	cv, err := h.curriculoDoUsuario(uid)
	if err != nil {
		log.Println("Erro ao carregar currículo:", err)
		return erroServidor(c, "Erro ao salvar habilidade.")
	}

	var existente models.Habilidade
	err = h.DB.Where("curriculo_id = ? AND LOWER(nome) = LOWER(?)", cv.ID, nome).First(&existente).Error
	if err == nil {
		return ok(c, existente)
	}
	if err != gorm.ErrRecordNotFound {
		log.Println("Erro ao verificar habilidade:", err)
		return erroServidor(c, "Erro ao salvar habilidade.")
	}

	hab := models.Habilidade{CurriculoID: cv.ID, Nome: nome}
	if err := h.DB.Create(&hab).Error; err != nil {
		log.Println("Erro ao criar habilidade:", err)
		return erroServidor(c, "Erro ao salvar habilidade.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": hab})
}

func (h *CurriculoHandler) ExcluirHabilidade(c *fiber.Ctx) error {
	return h.excluirItem(c, &models.Habilidade{}, "Habilidade não encontrada.")
}

type IdiomaReq struct {
	Nome  string `json:"nome"`
	Nivel string `json:"nivel"`
}

func nivelValido(n models.NivelProficiencia) bool {
	switch n {
	case models.NivelBasico, models.NivelIntermediario, models.NivelAvancado, models.NivelEspecialista:
		return true
	}
	return false
}

func (h *CurriculoHandler) SalvarIdioma(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req IdiomaReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	nome := strings.TrimSpace(req.Nome)
	nivel := models.NivelProficiencia(strings.ToUpper(strings.TrimSpace(req.Nivel)))
	errs := FieldErrors{}
	if nome == "" {
		errs.Add("nome", "Informe o idioma.")
	}
	if !nivelValido(nivel) {
		errs.Add("nivel", "Nível de proficiência inválido.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	cv, err := h.curriculoDoUsuario(uid)
	if err != nil {
		log.Println("Erro ao carregar currículo:", err)
		return erroServidor(c, "Erro ao salvar idioma.")
	}

	var idioma models.Idioma
	criando := c.Params("id") == ""
	if !criando {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return naoEncontrado(c, "Idioma não encontrado.")
		}
		if err := h.DB.Where("id = ? AND curriculo_id = ?", id, cv.ID).First(&idioma).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return naoEncontrado(c, "Idioma não encontrado.")
			}
			log.Println("Erro ao buscar idioma:", err)
			return erroServidor(c, "Erro ao salvar idioma.")
		}
	}

	idioma.CurriculoID = cv.ID
	idioma.Nome = nome
	idioma.Nivel = nivel

	if err := h.DB.Save(&idioma).Error; err != nil {
		log.Println("Erro ao salvar idioma:", err)
		return erroServidor(c, "Erro ao salvar idioma.")
	}

	status := fiber.StatusOK
	if criando {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": idioma})
}

func (h *CurriculoHandler) ExcluirIdioma(c *fiber.Ctx) error {
	return h.excluirItem(c, &models.Idioma{}, "Idioma não encontrado.")
}

type CertificacaoReq struct {
	Nome                string `json:"nome"`
	OrganizacaoEmissora string `json:"organizacaoEmissora"`
	DataEmissao         string `json:"dataEmissao"`
	URLCredencial       string `json:"urlCredencial"`
}

func (h *CurriculoHandler) SalvarCertificacao(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req CertificacaoReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	errs := FieldErrors{}
	if strings.TrimSpace(req.Nome) == "" {
		errs.Add("nome", "Informe o nome da certificação.")
	}
	if strings.TrimSpace(req.OrganizacaoEmissora) == "" {
		errs.Add("organizacaoEmissora", "Informe a organização emissora.")
	}
	emissao, okEmissao := parseMesAno(req.DataEmissao)
	if !okEmissao {
		errs.Add("dataEmissao", "Informe a data de emissão no formato AAAA-MM.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	cv, err := h.curriculoDoUsuario(uid)
	if err != nil {
		log.Println("Erro ao carregar currículo:", err)
		return erroServidor(c, "Erro ao salvar certificação.")
	}

	var cert models.Certificacao
	criando := c.Params("id") == ""
	if !criando {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return naoEncontrado(c, "Certificação não encontrada.")
		}
		if err := h.DB.Where("id = ? AND curriculo_id = ?", id, cv.ID).First(&cert).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return naoEncontrado(c, "Certificação não encontrada.")
			}
			log.Println("Erro ao buscar certificação:", err)
			return erroServidor(c, "Erro ao salvar certificação.")
		}
	}

	cert.CurriculoID = cv.ID
	cert.Nome = strings.TrimSpace(req.Nome)
	cert.OrganizacaoEmissora = strings.TrimSpace(req.OrganizacaoEmissora)
	cert.DataEmissao = emissao
	cert.URLCredencial = strings.TrimSpace(req.URLCredencial)

	if err := h.DB.Save(&cert).Error; err != nil {
		log.Println("Erro ao salvar certificação:", err)
		return erroServidor(c, "Erro ao salvar certificação.")
	}

	status := fiber.StatusOK
	if criando {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": cert})
}

func (h *CurriculoHandler) ExcluirCertificacao(c *fiber.Ctx) error {
	return h.excluirItem(c, &models.Certificacao{}, "Certificação não encontrada.")
}

type ProjetoPortfolioReq struct {
	Nome              string `json:"nome"`
	Descricao         string `json:"descricao"`
	ProjectURL        string `json:"projectUrl"`
	RepositorioURL    string `json:"repositorioUrl"`
	DataInicio        string `json:"dataInicio"`
	DataFim           string `json:"dataFim"`
	TecnologiasUsadas string `json:"tecnologiasUsadas"`
}

func (h *CurriculoHandler) SalvarProjetoPortfolio(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	var req ProjetoPortfolioReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	errs := FieldErrors{}
	if strings.TrimSpace(req.Nome) == "" {
		errs.Add("nome", "Informe o nome do projeto.")
	}
	inicio, okInicio := parseMesAnoOpcional(req.DataInicio)
	if !okInicio {
		errs.Add("dataInicio", "Data de início inválida.")
	}
	fim, okFim := parseMesAnoOpcional(req.DataFim)
	if !okFim {
		errs.Add("dataFim", "Data de término inválida.")
	}
	if inicio != nil && fim != nil && fim.Before(*inicio) {
		errs.Add("dataFim", "A data de término não pode ser anterior ao início.")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	cv, err := h.curriculoDoUsuario(uid)
	if err != nil {
		log.Println("Erro ao carregar currículo:", err)
		return erroServidor(c, "Erro ao salvar projeto de portfólio.")
	}

	var pp models.ProjetoPortfolio
	criando := c.Params("id") == ""
	if !criando {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return naoEncontrado(c, "Projeto de portfólio não encontrado.")
		}
		if err := h.DB.Where("id = ? AND curriculo_id = ?", id, cv.ID).First(&pp).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return naoEncontrado(c, "Projeto de portfólio não encontrado.")
			}
			log.Println("Erro ao buscar projeto de portfólio:", err)
			return erroServidor(c, "Erro ao salvar projeto de portfólio.")
		}
	}

	pp.CurriculoID = cv.ID
	pp.Nome = strings.TrimSpace(req.Nome)
	pp.Descricao = req.Descricao
	pp.ProjectURL = strings.TrimSpace(req.ProjectURL)
	pp.RepositorioURL = strings.TrimSpace(req.RepositorioURL)
	pp.DataInicio = inicio
	pp.DataFim = fim
	pp.TecnologiasUsadas = datatypes.JSONSlice[string](utils.SplitHabilidades(req.TecnologiasUsadas))

	if err := h.DB.Save(&pp).Error; err != nil {
		log.Println("Erro ao salvar projeto de portfólio:", err)
		return erroServidor(c, "Erro ao salvar projeto de portfólio.")
	}

	status := fiber.StatusOK
	if criando {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": pp})
}

func (h *CurriculoHandler) ExcluirProjetoPortfolio(c *fiber.Ctx) error {
	return h.excluirItem(c, &models.ProjetoPortfolio{}, "Projeto de portfólio não encontrado.")
}

// excluirItem apaga um item de sub-coleção garantindo que ele pertence ao
// currículo do usuário logado.
func (h *CurriculoHandler) excluirItem(c *fiber.Ctx, model interface{}, msgNaoEncontrado string) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return acessoNegado(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return naoEncontrado(c, msgNaoEncontrado)
	}

	var cv models.Curriculo
	if err := h.DB.Select("id").Where("usuario_id = ?", uid).First(&cv).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return naoEncontrado(c, msgNaoEncontrado)
		}
		log.Println("Erro ao carregar currículo:", err)
		return erroServidor(c, "Erro ao excluir item.")
	}

	res := h.DB.Where("id = ? AND curriculo_id = ?", id, cv.ID).Delete(model)
	if res.Error != nil {
		log.Println("Erro ao excluir item do currículo:", res.Error)
		return erroServidor(c, "Erro ao excluir item.")
	}
	if res.RowsAffected == 0 {
		return naoEncontrado(c, msgNaoEncontrado)
	}

	return ok(c, fiber.Map{"message": "Item removido com sucesso."})
}
