// Package curriculo contém o modelo de domínio da grade curricular de um curso:
// disciplinas com categoria e semestre ideal, e grupos de equivalência.
// Aqui não há dependências externas além do pacote shared.
package curriculo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Categoria define em qual grupo de exigência uma disciplina da grade conta.
type Categoria string

const (
	// CategoriaObrigatoria - disciplina obrigatória do curso.
	CategoriaObrigatoria Categoria = "obrigatoria"
	// CategoriaEletiva - disciplina optativa eletiva.
	CategoriaEletiva Categoria = "eletiva"
	// CategoriaLivre - disciplina optativa livre.
	CategoriaLivre Categoria = "livre"
)

// IsValid verifica que a categoria é uma das conhecidas.
func (c Categoria) IsValid() bool {
	switch c {
	case CategoriaObrigatoria, CategoriaEletiva, CategoriaLivre:
		return true
	default:
		return false
	}
}

// Categorias retorna todas as categorias da grade, em ordem fixa.
func Categorias() []Categoria {
	return []Categoria{CategoriaObrigatoria, CategoriaEletiva, CategoriaLivre}
}

// ══════════════════════════════════════════════════════════════════════════════
// DISCIPLINA DA GRADE
// ══════════════════════════════════════════════════════════════════════════════

// DisciplinaGrade representa uma vaga da grade curricular: uma disciplina
// esperada, com categoria e semestre ideal.
type DisciplinaGrade struct {
	// Codigo - código da disciplina.
	Codigo historico.CodigoDisciplina

	// Versao - versão do catálogo.
	Versao int

	// Nome - nome da disciplina (informativo).
	Nome string

	// Categoria - obrigatória, eletiva ou livre.
	Categoria Categoria

	// SemestreIdeal - semestre sugerido para cursar (1..duração do curso).
	SemestreIdeal int

	// CreditosAula - créditos-aula exigidos pela vaga.
	CreditosAula int

	// CreditosTrabalho - créditos-trabalho exigidos pela vaga.
	CreditosTrabalho int
}

// Chave retorna a chave (código, versão) da vaga.
func (d DisciplinaGrade) Chave() historico.Chave {
	return historico.Chave{Codigo: d.Codigo, Versao: d.Versao}
}

// Validate verifica os invariantes da vaga.
func (d DisciplinaGrade) Validate() error {
	if !d.Codigo.IsValid() {
		return historico.ErrCodigoInvalido
	}
	if !d.Categoria.IsValid() {
		return ErrCategoriaInvalida
	}
	if d.SemestreIdeal < 1 {
		return ErrSemestreIdealInvalido
	}
	if d.CreditosAula < 0 || d.CreditosTrabalho < 0 {
		return historico.ErrCreditosNegativos
	}
	return nil
}

// String retorna a representação textual para logs.
func (d DisciplinaGrade) String() string {
	return fmt.Sprintf("%s v%d (%s, sem. %d)", d.Codigo, d.Versao, d.Categoria, d.SemestreIdeal)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrCategoriaInvalida - categoria desconhecida.
	ErrCategoriaInvalida = errors.New("invalid curriculum category")

	// ErrSemestreIdealInvalido - semestre ideal deve ser >= 1.
	ErrSemestreIdealInvalido = errors.New("invalid ideal semester: must be >= 1")

	// ErrDuracaoInvalida - duração do currículo deve ser >= 1 semestre.
	ErrDuracaoInvalida = errors.New("invalid curriculum duration: must be >= 1 semester")

	// ErrIDVazio - identificador do currículo é obrigatório.
	ErrIDVazio = errors.New("curriculum id is required")
)

// ══════════════════════════════════════════════════════════════════════════════
// AGREGADO: CURRÍCULO
// ══════════════════════════════════════════════════════════════════════════════

// Curriculo é o agregado raiz da grade curricular de um curso.
// Invariante: não há duas vagas com a mesma chave (código, versão).
type Curriculo struct {
	// ID - identificador do currículo (ex: "45052-2021").
	ID string

	// CursoID - código do curso/programa a que o currículo pertence.
	CursoID string

	// Nome - nome do curso (informativo).
	Nome string

	// DuracaoSemestres - duração nominal do curso, em semestres.
	DuracaoSemestres int

	// Disciplinas - vagas da grade, na ordem definida pelo documento
	// curricular. A ordem importa: desempates da resolução de equivalências
	// seguem essa ordem.
	Disciplinas []DisciplinaGrade

	// Equivalencias - índice de equivalências do currículo, com fecho
	// transitivo já calculado na carga.
	Equivalencias *IndiceEquivalencias

	// indicePorChave acelera a busca de vaga por (código, versão).
	indicePorChave map[historico.Chave]int
}

// NewCurriculo cria um currículo validando todos os invariantes.
// Falha com shared.ErrDuplicateKey se houver duas vagas com a mesma chave -
// essa é uma inconsistência de dados fatal, nunca resolvida silenciosamente.
func NewCurriculo(id, cursoID, nome string, duracao int, disciplinas []DisciplinaGrade, grupos []GrupoEquivalencia) (*Curriculo, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDVazio
	}
	if duracao < 1 {
		return nil, ErrDuracaoInvalida
	}
	if len(disciplinas) == 0 {
		return nil, shared.ErrCurriculoVazio
	}

	indice := make(map[historico.Chave]int, len(disciplinas))
	for i, d := range disciplinas {
		if err := d.Validate(); err != nil {
			return nil, shared.WrapError("curriculo", "Validate", shared.ErrInvalidEntity,
				fmt.Sprintf("invalid discipline %s", d.Codigo), err)
		}
		ch := d.Chave()
		if _, existe := indice[ch]; existe {
			return nil, shared.WrapError("curriculo", "Validate", shared.ErrDuplicateKey,
				fmt.Sprintf("discipline %s appears twice in curriculum %s", ch, id), nil)
		}
		indice[ch] = i
	}

	equivalencias, err := NewIndiceEquivalencias(grupos)
	if err != nil {
		return nil, err
	}

	return &Curriculo{
		ID:               id,
		CursoID:          cursoID,
		Nome:             nome,
		DuracaoSemestres: duracao,
		Disciplinas:      disciplinas,
		Equivalencias:    equivalencias,
		indicePorChave:   indice,
	}, nil
}

// Vaga retorna a vaga da grade com a chave dada, se existir.
func (c *Curriculo) Vaga(ch historico.Chave) (DisciplinaGrade, bool) {
	i, ok := c.indicePorChave[ch]
	if !ok {
		return DisciplinaGrade{}, false
	}
	return c.Disciplinas[i], true
}

// PorCategoria retorna as vagas da categoria dada, na ordem da grade.
func (c *Curriculo) PorCategoria(cat Categoria) []DisciplinaGrade {
	vagas := make([]DisciplinaGrade, 0)
	for _, d := range c.Disciplinas {
		if d.Categoria == cat {
			vagas = append(vagas, d)
		}
	}
	return vagas
}

// String retorna a representação textual para logs.
func (c *Curriculo) String() string {
	return fmt.Sprintf("Curriculo{%s, %d disciplinas, %d semestres}",
		c.ID, len(c.Disciplinas), c.DuracaoSemestres)
}
