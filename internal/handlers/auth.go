package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
	"github.com/unifreela/api/internal/sessions"
	"github.com/unifreela/api/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	Sessions  *sessions.Store
	JWTSecret string
	Expires   int  // minutos
	Secure    bool // Secure no cookie (produção)
}

type RegistroReq struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	Senha          string `json:"senha"`
	ConfirmarSenha string `json:"confirmarSenha"`
}

type LoginReq struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
}

func (h *AuthHandler) clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
	})
}

func (h *AuthHandler) Registro(c *fiber.Ctx) error {
	var req RegistroReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	nome := strings.TrimSpace(req.Nome)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	senha := strings.TrimSpace(req.Senha)

	errs := FieldErrors{}
	if nome == "" {
		errs.Add("nome", "Nome obrigatório")
	}
	if email == "" {
		errs.Add("email", "Insira um email válido")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Insira um email válido")
	}
	if len(senha) < 6 {
		errs.Add("senha", "A senha deve ter no mínimo 6 caracteres")
	}
	if req.ConfirmarSenha != req.Senha {
		errs.Add("confirmarSenha", "As senhas não coincidem")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var existing models.Usuario
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "E-mail já cadastrado",
		})
	}
	if err != gorm.ErrRecordNotFound {
		log.Println("Erro ao consultar e-mail no registro:", err)
		return erroServidor(c, "Ocorreu um erro no servidor.")
	}

	hash, err := utils.HashPassword(senha)
	if err != nil {
		log.Println("Erro ao processar senha:", err)
		return erroServidor(c, "Ocorreu um erro no servidor.")
	}

	u := models.Usuario{
		Nome:  nome,
		Email: email,
		Senha: hash,
		Role:  models.RoleUser,
		Ativo: true,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "E-mail já cadastrado",
			})
		}
		log.Println("Erro ao cadastrar usuário:", err)
		return erroServidor(c, "Ocorreu um erro no servidor.")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), u.Nome, string(u.Role), u.Email, h.Expires)
	if err != nil {
		log.Println("Erro ao assinar token:", err)
		return erroServidor(c, "Ocorreu um erro no servidor.")
	}
	h.setTokenCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"usuario": fiber.Map{
				"id":    u.ID,
				"nome":  u.Nome,
				"email": u.Email,
				"role":  u.Role,
			},
		},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return erroDominio(c, "Corpo da requisição inválido.")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	senha := strings.TrimSpace(req.Senha)

	errs := FieldErrors{}
	if email == "" {
		errs.Add("email", "E-mail inválido")
	}
	if senha == "" {
		errs.Add("senha", "Senha obrigatória")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var u models.Usuario
	err := h.DB.
		Preload("PerfilCliente", func(db *gorm.DB) *gorm.DB { return db.Select("id", "usuario_id") }).
		Preload("PerfilFreelancer", func(db *gorm.DB) *gorm.DB { return db.Select("id", "usuario_id") }).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Println("Erro no login:", err)
			return erroServidor(c, "Ocorreu um erro no servidor.")
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "E-mail ou senha inválidos.",
		})
	}

	if !utils.CheckPassword(u.Senha, senha) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "E-mail ou senha inválidos.",
		})
	}

	if !u.Ativo {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Conta desativada.",
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), u.Nome, string(u.Role), u.Email, h.Expires)
	if err != nil {
		log.Println("Erro ao assinar token:", err)
		return erroServidor(c, "Ocorreu um erro no servidor.")
	}
	h.setTokenCookie(c, token)

	return ok(c, fiber.Map{
		"usuario": fiber.Map{
			"id":                  u.ID,
			"nome":                u.Nome,
			"email":               u.Email,
			"role":                u.Role,
			"hasPerfilCliente":    u.PerfilCliente != nil,
			"hasPerfilFreelancer": u.PerfilFreelancer != nil,
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Revoga o token atual antes de apagar o cookie; sem isso o JWT
	// continuaria válido pelos 7 dias restantes.
	if tokenStr := c.Cookies("token"); tokenStr != "" && h.Sessions != nil {
		if claims, err := utils.ParseJWT(h.JWTSecret, tokenStr); err == nil && claims.ExpiresAt != nil {
			if err := h.Sessions.RevogarToken(c.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				log.Println("Erro ao revogar token no logout:", err)
			}
		}
	}

	h.clearTokenCookie(c)
	return ok(c, fiber.Map{"message": "Logout realizado com sucesso."})
}
