// Package regras contém as tabelas de exigência locais do curso: Blocos
// (listas fixas com mínimo de disciplinas/créditos) e Trilhas (grupos
// hierárquicos de regras, algumas marcadas como núcleo).
package regras

import (
	"errors"
	"fmt"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXIGÊNCIA
// Bloco e Regra de Trilha compartilham a mesma forma: uma lista de códigos
// elegíveis, um mínimo de disciplinas distintas e mínimos opcionais de
// créditos. A avaliação fica no pacote evolucao.
// ══════════════════════════════════════════════════════════════════════════════

// Exigencia é a forma comum de um requisito avaliável.
type Exigencia struct {
	// Codigos - disciplinas elegíveis. Códigos que não existem em nenhum
	// catálogo simplesmente nunca são casados (questão de qualidade de
	// dados, não falha do motor).
	Codigos []historico.CodigoDisciplina

	// MinimoDisciplinas - número mínimo de disciplinas distintas concluídas.
	MinimoDisciplinas int

	// MinimoCreditosAula - mínimo de créditos-aula somados (0 = sem mínimo).
	MinimoCreditosAula int

	// MinimoCreditosTrabalho - mínimo de créditos-trabalho somados (0 = sem mínimo).
	MinimoCreditosTrabalho int
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrExigenciaSemCodigos - exigência precisa de ao menos um código elegível.
	ErrExigenciaSemCodigos = errors.New("requirement needs at least one eligible code")

	// ErrMinimoInvalido - mínimos não podem ser negativos.
	ErrMinimoInvalido = errors.New("requirement minimums must be non-negative")

	// ErrNomeVazio - nome da exigência é obrigatório.
	ErrNomeVazio = errors.New("requirement name is required")

	// ErrTrilhaSemRegras - trilha precisa de ao menos uma regra.
	ErrTrilhaSemRegras = errors.New("trilha needs at least one rule")
)

// Validate verifica os invariantes da exigência.
func (e Exigencia) Validate() error {
	if len(e.Codigos) == 0 {
		return ErrExigenciaSemCodigos
	}
	if e.MinimoDisciplinas < 0 || e.MinimoCreditosAula < 0 || e.MinimoCreditosTrabalho < 0 {
		return ErrMinimoInvalido
	}
	for _, c := range e.Codigos {
		if !c.IsValid() {
			return historico.ErrCodigoInvalido
		}
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// BLOCO
// ══════════════════════════════════════════════════════════════════════════════

// Bloco é uma exigência nomeada e independente: a satisfação de um Bloco
// nunca depende de outro.
type Bloco struct {
	// ID - identificador no cadastro local.
	ID string

	// Nome - nome do bloco (ex: "Bloco de Estatística").
	Nome string

	// Exigencia - a forma avaliável do bloco.
	Exigencia Exigencia
}

// Validate verifica os invariantes do bloco.
func (b Bloco) Validate() error {
	if b.Nome == "" {
		return ErrNomeVazio
	}
	return b.Exigencia.Validate()
}

// String retorna a representação textual para logs.
func (b Bloco) String() string {
	return fmt.Sprintf("Bloco{%s, %d códigos, min %d}",
		b.Nome, len(b.Exigencia.Codigos), b.Exigencia.MinimoDisciplinas)
}

// ══════════════════════════════════════════════════════════════════════════════
// TRILHA
// ══════════════════════════════════════════════════════════════════════════════

// Regra é uma exigência dentro de uma trilha. Regras são avaliadas de forma
// independente: uma disciplina pode contar para mais de uma regra se aparecer
// em mais de uma lista elegível.
type Regra struct {
	// ID - identificador no cadastro local.
	ID string

	// Nome - nome da regra (ex: "Núcleo de IA").
	Nome string

	// Nucleo - true se a regra compõe o núcleo da trilha.
	Nucleo bool

	// Exigencia - a forma avaliável da regra.
	Exigencia Exigencia
}

// Validate verifica os invariantes da regra.
func (r Regra) Validate() error {
	if r.Nome == "" {
		return ErrNomeVazio
	}
	return r.Exigencia.Validate()
}

// Trilha é uma faixa de especialização composta por regras ordenadas.
type Trilha struct {
	// ID - identificador no cadastro local.
	ID string

	// Nome - nome da trilha (ex: "Inteligência Artificial").
	Nome string

	// Regras - regras da trilha, na ordem do cadastro.
	Regras []Regra
}

// Validate verifica os invariantes da trilha.
func (t Trilha) Validate() error {
	if t.Nome == "" {
		return ErrNomeVazio
	}
	if len(t.Regras) == 0 {
		return ErrTrilhaSemRegras
	}
	for _, r := range t.Regras {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("regra %q: %w", r.Nome, err)
		}
	}
	return nil
}

// String retorna a representação textual para logs.
func (t Trilha) String() string {
	return fmt.Sprintf("Trilha{%s, %d regras}", t.Nome, len(t.Regras))
}

// Conjunto agrupa todas as tabelas de exigência de um currículo. A ausência
// de qualquer exigência (conjunto vazio) é válida e apenas não gera avaliações.
type Conjunto struct {
	Blocos  []Bloco
	Trilhas []Trilha
}

// Vazio retorna true se não há nenhuma exigência cadastrada.
func (c Conjunto) Vazio() bool {
	return len(c.Blocos) == 0 && len(c.Trilhas) == 0
}
