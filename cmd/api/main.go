package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/unifreela/api/internal/config"
	"github.com/unifreela/api/internal/db"
	"github.com/unifreela/api/internal/handlers"
	"github.com/unifreela/api/internal/middleware"
	"github.com/unifreela/api/internal/models"
	"github.com/unifreela/api/internal/services/empresa"
	"github.com/unifreela/api/internal/sessions"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := sessions.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis não conectou:", err)
	}
	store := sessions.NewStore(rdb)

	if err := gdb.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Curriculo{},
		&models.ExperienciaProfissional{},
		&models.FormacaoAcademica{},
		&models.Habilidade{},
		&models.Idioma{},
		&models.Certificacao{},
		&models.ProjetoPortfolio{},
		&models.Projeto{},
		&models.Proposta{},
		&models.Avaliacao{},
	); err != nil {
		log.Fatal(err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	sessaoValidade := time.Duration(cfg.JWTExpiresMin) * time.Minute

	authH := &handlers.AuthHandler{
		DB:        gdb,
		Sessions:  store,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
		Secure:    cfg.Producao(),
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		Secure:          cfg.Producao(),
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}

	candidatoH := handlers.NewCandidatoHandler(gdb)
	clienteH := handlers.NewClienteHandler(gdb)
	projetoH := handlers.NewProjetoHandler(gdb)
	propostaH := handlers.NewPropostaHandler(gdb)
	curriculoH := handlers.NewCurriculoHandler(gdb)
	freelancerH := handlers.NewFreelancerHandler(gdb)
	avaliacaoH := handlers.NewAvaliacaoHandler(gdb)
	adminH := handlers.NewAdminHandler(gdb, store, empresa.NewService(gdb), sessaoValidade)

	api := app.Group("/api")

	// públicas
	api.Post("/auth/registro", authH.Registro)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	api.Get("/freelancers", freelancerH.Listar)
	api.Get("/freelancers/:id", freelancerH.Detalhes)
	api.Get("/usuarios/:id/avaliacoes", avaliacaoH.ListarDoUsuario)

	// protegidas (JWT no cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret, store),
		middleware.AttachJWTLocals(),
	)

	// área do candidato (freelancer)
	protected.Get("/candidato/meus-dados", candidatoH.MeusDados)
	protected.Get("/candidato/dashboard-data", candidatoH.DashboardData)

	// currículo e sub-coleções
	cv := protected.Group("/curriculo")
	cv.Put("/informacoes-pessoais", curriculoH.SalvarInformacoesPessoais)
	cv.Post("/experiencias", curriculoH.SalvarExperiencia)
	cv.Put("/experiencias/:id", curriculoH.SalvarExperiencia)
	cv.Delete("/experiencias/:id", curriculoH.ExcluirExperiencia)
	cv.Post("/formacoes", curriculoH.SalvarFormacao)
	cv.Put("/formacoes/:id", curriculoH.SalvarFormacao)
	cv.Delete("/formacoes/:id", curriculoH.ExcluirFormacao)
	cv.Post("/habilidades", curriculoH.AdicionarHabilidade)
	cv.Delete("/habilidades/:id", curriculoH.ExcluirHabilidade)
	cv.Post("/idiomas", curriculoH.SalvarIdioma)
	cv.Put("/idiomas/:id", curriculoH.SalvarIdioma)
	cv.Delete("/idiomas/:id", curriculoH.ExcluirIdioma)
	cv.Post("/certificacoes", curriculoH.SalvarCertificacao)
	cv.Put("/certificacoes/:id", curriculoH.SalvarCertificacao)
	cv.Delete("/certificacoes/:id", curriculoH.ExcluirCertificacao)
	cv.Post("/projetos-portfolio", curriculoH.SalvarProjetoPortfolio)
	cv.Put("/projetos-portfolio/:id", curriculoH.SalvarProjetoPortfolio)
	cv.Delete("/projetos-portfolio/:id", curriculoH.ExcluirProjetoPortfolio)

	// perfil de cliente e dashboard de contratante
	protected.Get("/cliente/perfil", clienteH.Perfil)
	protected.Put("/cliente/perfil", clienteH.Atualizar)
	protected.Get("/cliente/dashboard", clienteH.Dashboard)

	// projetos
	protected.Get("/projetos", projetoH.ListarDisponiveis)
	protected.Post("/projetos", projetoH.Salvar)
	protected.Get("/cliente/projetos", projetoH.ListarDoCliente)
	protected.Get("/projetos/:id", projetoH.Detalhes)
	protected.Get("/projetos/:id/edicao", projetoH.ParaEdicao)
	protected.Put("/projetos/:id", projetoH.Salvar)
	protected.Patch("/projetos/:id/status", projetoH.AlterarStatus)
	protected.Delete("/projetos/:id", projetoH.Excluir)

	// propostas
	protected.Post("/propostas", propostaH.Enviar)
	protected.Get("/propostas", propostaH.MinhasPropostas)
	protected.Get("/cliente/propostas", propostaH.PropostasDoCliente)
	protected.Get("/propostas/:id", propostaH.Detalhes)
	protected.Patch("/propostas/:id/status", propostaH.AtualizarStatus)
	protected.Delete("/propostas/:id", propostaH.Cancelar)

	// avaliações
	protected.Post("/avaliacoes", avaliacaoH.Criar)

	// back-office
	admin := protected.Group("/admin", middleware.RequireRoles("ADMIN"))
	admin.Get("/stats", adminH.Stats)
	admin.Get("/usuarios", adminH.ListarUsuarios)
	admin.Get("/usuarios/busca", adminH.ProcurarUsuarios)
	admin.Put("/usuarios/:id", adminH.EditarUsuario)
	admin.Patch("/usuarios/:id/senha", adminH.MudarSenha)
	admin.Patch("/usuarios/:id/ativo", adminH.AtivarDesativar)
	admin.Delete("/usuarios/:id", adminH.ExcluirUsuario)
	admin.Post("/empresas", adminH.CriarEmpresaComRecrutador)
	admin.Get("/empresas", adminH.ListarEmpresas)
	admin.Put("/empresas/:id", adminH.EditarEmpresa)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
