package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type NivelProficiencia string

const (
	NivelBasico        NivelProficiencia = "BASICO"
	NivelIntermediario NivelProficiencia = "INTERMEDIARIO"
	NivelAvancado      NivelProficiencia = "AVANCADO"
	NivelEspecialista  NivelProficiencia = "ESPECIALISTA"
)

// Curriculo é o perfil de freelancer de um usuário, com as sub-coleções
// que compõem o currículo completo.
type Curriculo struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UsuarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"usuarioId"`

	TituloProfissional string              `gorm:"type:varchar(150);not null" json:"tituloProfissional"`
	Resumo             string              `gorm:"type:text" json:"resumo,omitempty"`
	ValorHora          decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"valorHora"`
	PortfolioURL       string              `gorm:"type:text" json:"portfolioUrl,omitempty"`
	GithubURL          string              `gorm:"type:text" json:"githubUrl,omitempty"`
	LinkedinURL        string              `gorm:"type:text" json:"linkedinUrl,omitempty"`
	Disponivel         bool                `gorm:"default:true" json:"disponivel"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Usuario           *Usuario                  `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Experiencias      []ExperienciaProfissional `gorm:"foreignKey:CurriculoID" json:"experiencias,omitempty"`
	Formacoes         []FormacaoAcademica       `gorm:"foreignKey:CurriculoID" json:"formacoes,omitempty"`
	Habilidades       []Habilidade              `gorm:"foreignKey:CurriculoID" json:"habilidades,omitempty"`
	Idiomas           []Idioma                  `gorm:"foreignKey:CurriculoID" json:"idiomas,omitempty"`
	Certificacoes     []Certificacao            `gorm:"foreignKey:CurriculoID" json:"certificacoes,omitempty"`
	ProjetosPortfolio []ProjetoPortfolio        `gorm:"foreignKey:CurriculoID" json:"projetosPortfolio,omitempty"`
}

type ExperienciaProfissional struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CurriculoID uuid.UUID  `gorm:"type:uuid;not null;index" json:"curriculoId"`
	Cargo       string     `gorm:"type:varchar(150);not null" json:"cargo"`
	Empresa     string     `gorm:"type:varchar(150);not null" json:"empresa"`
	Local       string     `gorm:"type:varchar(100)" json:"local,omitempty"`
	Descricao   string     `gorm:"type:text" json:"descricao,omitempty"`
	DataInicio  time.Time  `gorm:"not null" json:"dataInicio"`
	DataFim     *time.Time `json:"dataFim,omitempty"`
	Atual       bool       `gorm:"default:false" json:"atual"`
}

type FormacaoAcademica struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CurriculoID uuid.UUID  `gorm:"type:uuid;not null;index" json:"curriculoId"`
	Instituicao string     `gorm:"type:varchar(150);not null" json:"instituicao"`
	Curso       string     `gorm:"type:varchar(150);not null" json:"curso"`
	AreaEstudo  string     `gorm:"type:varchar(255)" json:"areaEstudo,omitempty"`
	Descricao   string     `gorm:"type:text" json:"descricao,omitempty"`
	DataInicio  time.Time  `gorm:"not null" json:"dataInicio"`
	DataFim     *time.Time `json:"dataFim,omitempty"`
	Concluido   bool       `gorm:"default:false" json:"concluido"`
}

type Habilidade struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CurriculoID uuid.UUID `gorm:"type:uuid;not null;index" json:"curriculoId"`
	Nome        string    `gorm:"type:varchar(100);not null" json:"nome"`
}

type Idioma struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CurriculoID uuid.UUID         `gorm:"type:uuid;not null;index" json:"curriculoId"`
	Nome        string            `gorm:"type:varchar(100);not null" json:"nome"`
	Nivel       NivelProficiencia `gorm:"type:varchar(20);not null" json:"nivel"`
}

type Certificacao struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CurriculoID         uuid.UUID `gorm:"type:uuid;not null;index" json:"curriculoId"`
	Nome                string    `gorm:"type:varchar(150);not null" json:"nome"`
	OrganizacaoEmissora string    `gorm:"type:varchar(150);not null" json:"organizacaoEmissora"`
	DataEmissao         time.Time `gorm:"not null" json:"dataEmissao"`
	URLCredencial       string    `gorm:"type:text" json:"urlCredencial,omitempty"`
}

type ProjetoPortfolio struct {
	ID                uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CurriculoID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"curriculoId"`
	Nome              string                      `gorm:"type:varchar(150);not null" json:"nome"`
	Descricao         string                      `gorm:"type:text" json:"descricao,omitempty"`
	ProjectURL        string                      `gorm:"type:text" json:"projectUrl,omitempty"`
	RepositorioURL    string                      `gorm:"type:text" json:"repositorioUrl,omitempty"`
	DataInicio        *time.Time                  `json:"dataInicio,omitempty"`
	DataFim           *time.Time                  `json:"dataFim,omitempty"`
	TecnologiasUsadas datatypes.JSONSlice[string] `json:"tecnologiasUsadas"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
