package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/db"
	"github.com/unifreela/api/internal/middleware"
	"github.com/unifreela/api/internal/models"
	"github.com/unifreela/api/internal/services/empresa"
	"github.com/unifreela/api/internal/utils"
)

// Testes de integração contra um Postgres real. Rodam apenas com
// TEST_DB_DSN definido (o banco é truncado a cada teste).

const segredoIntegracao = "segredo-integracao"

func dbIntegracao(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN não definido")
	}

	gdb, err := db.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
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
	))

	// Filhos antes dos pais, na ordem das FKs.
	limpar := []interface{}{
		&models.Avaliacao{},
		&models.Proposta{},
		&models.Projeto{},
		&models.ExperienciaProfissional{},
		&models.FormacaoAcademica{},
		&models.Habilidade{},
		&models.Idioma{},
		&models.Certificacao{},
		&models.ProjetoPortfolio{},
		&models.Curriculo{},
		&models.Cliente{},
		&models.Usuario{},
	}
	for _, m := range limpar {
		require.NoError(t, gdb.Where("1 = 1").Delete(m).Error)
	}
	return gdb
}

func appIntegracao(gdb *gorm.DB) *fiber.App {
	app := fiber.New()
	propostaH := NewPropostaHandler(gdb)
	projetoH := NewProjetoHandler(gdb)
	adminH := NewAdminHandler(gdb, nil, empresa.NewService(gdb), time.Hour)

	api := app.Group("/api",
		middleware.JWTFromCookie(segredoIntegracao, nil),
		middleware.AttachJWTLocals(),
	)
	api.Post("/propostas", propostaH.Enviar)
	api.Patch("/propostas/:id/status", propostaH.AtualizarStatus)
	api.Delete("/projetos/:id", projetoH.Excluir)

	admin := api.Group("/admin", middleware.RequireRoles("ADMIN"))
	admin.Delete("/usuarios/:id", adminH.ExcluirUsuario)
	return app
}

func criaUsuario(t *testing.T, gdb *gorm.DB, nome, email string, role models.RoleUsuario) models.Usuario {
	t.Helper()
	u := models.Usuario{Nome: nome, Email: email, Senha: "hash", Role: role, Ativo: true}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func cookieDe(t *testing.T, u models.Usuario) string {
	t.Helper()
	token, err := utils.SignJWT(segredoIntegracao, u.ID.String(), u.Nome, string(u.Role), u.Email, 60)
	require.NoError(t, err)
	return "token=" + token
}

func reqJSON(t *testing.T, method, url, cookie string, body interface{}) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, url, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", cookie)
	return req
}

func TestIntegracaoPropostaDuplicada(t *testing.T) {
	gdb := dbIntegracao(t)
	app := appIntegracao(gdb)

	cliente := criaUsuario(t, gdb, "Carlos", "carlos@example.com", models.RoleUser)
	freela := criaUsuario(t, gdb, "Fernanda", "fernanda@example.com", models.RoleUser)
	require.NoError(t, gdb.Create(&models.Curriculo{UsuarioID: freela.ID, TituloProfissional: "Dev"}).Error)

	projeto := models.Projeto{
		CriadoPorID: cliente.ID,
		Titulo:      "Loja virtual",
		Descricao:   "Montar uma loja virtual completa com checkout.",
		Tipo:        models.TipoProjetoFixo,
		Status:      models.ProjetoAberto,
	}
	require.NoError(t, gdb.Create(&projeto).Error)

	corpo := map[string]interface{}{
		"projetoId":         projeto.ID.String(),
		"mensagem":          "Tenho interesse e experiência neste tipo de projeto.",
		"valorProposto":     "1500,00",
		"prazoEstimadoDias": 15,
	}

	resp, err := app.Test(reqJSON(t, "POST", "/api/propostas", cookieDe(t, freela), corpo), 15000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(reqJSON(t, "POST", "/api/propostas", cookieDe(t, freela), corpo), 15000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "Você já enviou uma proposta para este projeto.", m["error"])

	var total int64
	gdb.Model(&models.Proposta{}).Where("projeto_id = ?", projeto.ID).Count(&total)
	assert.EqualValues(t, 1, total)
}

func TestIntegracaoStatusPropostaSemSerDono(t *testing.T) {
	gdb := dbIntegracao(t)
	app := appIntegracao(gdb)

	cliente := criaUsuario(t, gdb, "Carlos", "carlos@example.com", models.RoleUser)
	freela := criaUsuario(t, gdb, "Fernanda", "fernanda@example.com", models.RoleUser)
	intruso := criaUsuario(t, gdb, "Igor", "igor@example.com", models.RoleUser)

	projeto := models.Projeto{
		CriadoPorID: cliente.ID,
		Titulo:      "API de pagamentos",
		Descricao:   "Integração com gateway de pagamentos e conciliação.",
		Tipo:        models.TipoConsultoria,
		Status:      models.ProjetoAberto,
	}
	require.NoError(t, gdb.Create(&projeto).Error)

	proposta := models.Proposta{
		FreelancerID:      freela.ID,
		ProjetoID:         projeto.ID,
		Mensagem:          "Posso começar imediatamente.",
		ValorProposto:     decimal.NewFromInt(2000),
		PrazoEstimadoDias: 20,
		Status:            models.PropostaEnviada,
	}
	require.NoError(t, gdb.Create(&proposta).Error)

	corpo := map[string]string{"status": "ACEITA"}

	// Nem um terceiro nem o próprio autor mudam o status; só o dono do
	// projeto. O registro não pode ser tocado.
	for _, u := range []models.Usuario{intruso, freela} {
		resp, err := app.Test(reqJSON(t, "PATCH", "/api/propostas/"+proposta.ID.String()+"/status", cookieDe(t, u), corpo), 15000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, u.Nome)

		var atual models.Proposta
		require.NoError(t, gdb.First(&atual, "id = ?", proposta.ID).Error)
		assert.Equal(t, models.PropostaEnviada, atual.Status, u.Nome)
	}

	resp, err := app.Test(reqJSON(t, "PATCH", "/api/propostas/"+proposta.ID.String()+"/status", cookieDe(t, cliente), corpo), 15000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var atual models.Proposta
	require.NoError(t, gdb.First(&atual, "id = ?", proposta.ID).Error)
	assert.Equal(t, models.PropostaAceita, atual.Status)
}

func TestIntegracaoExcluirProjetoComAvaliacoes(t *testing.T) {
	gdb := dbIntegracao(t)
	app := appIntegracao(gdb)

	cliente := criaUsuario(t, gdb, "Carlos", "carlos@example.com", models.RoleUser)
	freela := criaUsuario(t, gdb, "Fernanda", "fernanda@example.com", models.RoleUser)

	projeto := models.Projeto{
		CriadoPorID: cliente.ID,
		Titulo:      "Dashboard de vendas",
		Descricao:   "Painel com métricas de vendas em tempo quase real.",
		Tipo:        models.TipoProjetoFixo,
		Status:      models.ProjetoConcluido,
	}
	require.NoError(t, gdb.Create(&projeto).Error)
	require.NoError(t, gdb.Create(&models.Proposta{
		FreelancerID:      freela.ID,
		ProjetoID:         projeto.ID,
		Mensagem:          "Proposta para o painel.",
		ValorProposto:     decimal.NewFromInt(3000),
		PrazoEstimadoDias: 30,
		Status:            models.PropostaAceita,
	}).Error)
	require.NoError(t, gdb.Create(&models.Avaliacao{
		ProjetoID:   projeto.ID,
		AvaliadorID: cliente.ID,
		AvaliadoID:  freela.ID,
		Nota:        5,
	}).Error)

	resp, err := app.Test(reqJSON(t, "DELETE", "/api/projetos/"+projeto.ID.String(), cookieDe(t, cliente), nil), 15000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var restantes int64
	gdb.Model(&models.Projeto{}).Where("id = ?", projeto.ID).Count(&restantes)
	assert.EqualValues(t, 0, restantes)
	gdb.Model(&models.Proposta{}).Where("projeto_id = ?", projeto.ID).Count(&restantes)
	assert.EqualValues(t, 0, restantes)
	gdb.Model(&models.Avaliacao{}).Where("projeto_id = ?", projeto.ID).Count(&restantes)
	assert.EqualValues(t, 0, restantes)
}

func TestIntegracaoAdminExcluirUsuarioComAvaliacoes(t *testing.T) {
	gdb := dbIntegracao(t)
	app := appIntegracao(gdb)

	admin := criaUsuario(t, gdb, "Ana", "ana@example.com", models.RoleAdmin)
	cliente := criaUsuario(t, gdb, "Carlos", "carlos@example.com", models.RoleUser)
	freela := criaUsuario(t, gdb, "Fernanda", "fernanda@example.com", models.RoleUser)
	require.NoError(t, gdb.Create(&models.Cliente{UsuarioID: cliente.ID, NomeFantasia: "Carlos ME"}).Error)

	projeto := models.Projeto{
		CriadoPorID: cliente.ID,
		Titulo:      "Migração de banco",
		Descricao:   "Migrar o banco legado para Postgres sem downtime.",
		Tipo:        models.TipoLongoPrazo,
		Status:      models.ProjetoConcluido,
	}
	require.NoError(t, gdb.Create(&projeto).Error)
	require.NoError(t, gdb.Create(&models.Proposta{
		FreelancerID:      freela.ID,
		ProjetoID:         projeto.ID,
		Mensagem:          "Proposta para a migração.",
		ValorProposto:     decimal.NewFromInt(8000),
		PrazoEstimadoDias: 60,
		Status:            models.PropostaAceita,
	}).Error)
	// Avaliação de terceiro apontando para o projeto do usuário excluído:
	// precisa sair junto com o projeto.
	require.NoError(t, gdb.Create(&models.Avaliacao{
		ProjetoID:   projeto.ID,
		AvaliadorID: freela.ID,
		AvaliadoID:  cliente.ID,
		Nota:        4,
	}).Error)

	resp, err := app.Test(reqJSON(t, "DELETE", "/api/admin/usuarios/"+cliente.ID.String(), cookieDe(t, admin), nil), 15000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var restantes int64
	gdb.Model(&models.Usuario{}).Where("id = ?", cliente.ID).Count(&restantes)
	assert.EqualValues(t, 0, restantes)
	gdb.Model(&models.Projeto{}).Where("id = ?", projeto.ID).Count(&restantes)
	assert.EqualValues(t, 0, restantes)
	gdb.Model(&models.Avaliacao{}).Where("projeto_id = ?", projeto.ID).Count(&restantes)
	assert.EqualValues(t, 0, restantes)
}
