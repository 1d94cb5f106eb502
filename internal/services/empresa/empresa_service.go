package empresa

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unifreela/api/internal/models"
)

// Service concentra a criação de empresa (perfil de cliente) junto com seu
// primeiro usuário. As escritas recebem o tx e devem rodar dentro de uma
// transação para não deixar usuário sem perfil nem perfil órfão.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// CriarComRecrutador cria o usuário recrutador e o perfil de cliente da
// empresa. Deve ser chamado dentro de uma transação.
func (s *Service) CriarComRecrutador(tx *gorm.DB, nomeEmpresa, cnpj, nomeRecrutador, emailRecrutador, senhaHash string) (*models.Usuario, error) {
	if nomeEmpresa == "" || nomeRecrutador == "" || emailRecrutador == "" || senhaHash == "" {
		return nil, errors.New("dados obrigatórios ausentes para criar a empresa")
	}

	usuario := models.Usuario{
		Nome:  nomeRecrutador,
		Email: emailRecrutador,
		Senha: senhaHash,
		Role:  models.RoleUser,
		Ativo: true,
	}
	if err := tx.Create(&usuario).Error; err != nil {
		return nil, err
	}

	cliente := models.Cliente{
		UsuarioID:    usuario.ID,
		NomeFantasia: nomeEmpresa,
		CpfOuCnpj:    cnpj,
	}
	if err := tx.Create(&cliente).Error; err != nil {
		return nil, err
	}

	usuario.PerfilCliente = &cliente
	return &usuario, nil
}
