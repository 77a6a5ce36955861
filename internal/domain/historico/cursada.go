// Package historico contém o modelo de domínio do histórico escolar do aluno.
// É o insumo bruto do cálculo de evolução - aqui não há dependências externas.
package historico

import (
	"errors"
	"fmt"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// NUSP representa o número identificador do aluno no registro corporativo.
type NUSP string

// IsValid verifica que o NUSP é composto apenas por dígitos (5 a 10).
func (n NUSP) IsValid() bool {
	s := string(n)
	if len(s) < 5 || len(s) > 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String retorna a representação textual do NUSP.
func (n NUSP) String() string {
	return string(n)
}

// CodigoDisciplina representa o código de uma disciplina (ex: "MAC0110").
type CodigoDisciplina string

// IsValid verifica o formato do código: 3-10 caracteres sem espaço em branco.
func (c CodigoDisciplina) IsValid() bool {
	s := string(c)
	return len(s) >= 3 && len(s) <= 10 && !strings.ContainsAny(s, " \t\n\r")
}

// String retorna a representação textual do código.
func (c CodigoDisciplina) String() string {
	return string(c)
}

// Semestre representa um semestre letivo no formato AAAAS (ex: 20241 = 2024/1).
// A ordenação numérica coincide com a ordenação cronológica.
type Semestre int

// IsValid verifica que o semestre está num intervalo plausível.
func (s Semestre) IsValid() bool {
	ano := int(s) / 10
	periodo := int(s) % 10
	return ano >= 1970 && ano <= 2100 && (periodo == 1 || periodo == 2)
}

// After retorna true se s é posterior a outro semestre.
func (s Semestre) After(outro Semestre) bool {
	return s > outro
}

// String retorna a representação "AAAA/S".
func (s Semestre) String() string {
	return fmt.Sprintf("%d/%d", int(s)/10, int(s)%10)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Resultado representa o desfecho de uma tentativa de cursar uma disciplina.
type Resultado string

const (
	// ResultadoAprovado - aluno aprovado; a cursada conta como conclusão.
	ResultadoAprovado Resultado = "aprovado"
	// ResultadoReprovado - aluno reprovado por nota ou frequência.
	ResultadoReprovado Resultado = "reprovado"
	// ResultadoEmCurso - matrícula em andamento, sem desfecho.
	ResultadoEmCurso Resultado = "em_curso"
	// ResultadoTrancado - matrícula trancada pelo aluno.
	ResultadoTrancado Resultado = "trancado"
)

// IsValid verifica que o resultado é um dos valores conhecidos.
func (r Resultado) IsValid() bool {
	switch r {
	case ResultadoAprovado, ResultadoReprovado, ResultadoEmCurso, ResultadoTrancado:
		return true
	default:
		return false
	}
}

// Conta retorna true se a cursada conta como conclusão da disciplina.
func (r Resultado) Conta() bool {
	return r == ResultadoAprovado
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTIDADE: CURSADA
// ══════════════════════════════════════════════════════════════════════════════

// Cursada representa uma tentativa de cursar uma disciplina registrada no
// histórico escolar. Um mesmo (código, versão) pode aparecer várias vezes;
// apenas a melhor tentativa conta para a evolução.
type Cursada struct {
	// Codigo - código da disciplina.
	Codigo CodigoDisciplina

	// Versao - versão do catálogo da disciplina.
	Versao int

	// Nome - nome da disciplina conforme o registro (informativo).
	Nome string

	// CreditosAula - créditos-aula da disciplina.
	CreditosAula int

	// CreditosTrabalho - créditos-trabalho da disciplina.
	CreditosTrabalho int

	// Resultado - desfecho da tentativa.
	Resultado Resultado

	// Nota - nota final, quando lançada.
	Nota *float64

	// Semestre - semestre letivo em que a disciplina foi cursada.
	Semestre Semestre
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrNUSPInvalido - NUSP fora do formato esperado.
	ErrNUSPInvalido = errors.New("invalid nusp: must be 5-10 digits")

	// ErrCodigoInvalido - código de disciplina fora do formato esperado.
	ErrCodigoInvalido = errors.New("invalid discipline code")

	// ErrSemestreInvalido - semestre fora do formato AAAAS.
	ErrSemestreInvalido = errors.New("invalid semester: expected AAAAS format")

	// ErrResultadoInvalido - resultado desconhecido.
	ErrResultadoInvalido = errors.New("invalid attempt result")

	// ErrCreditosNegativos - créditos não podem ser negativos.
	ErrCreditosNegativos = errors.New("invalid credits: must be non-negative")
)

// Validate verifica os invariantes da cursada.
func (c Cursada) Validate() error {
	if !c.Codigo.IsValid() {
		return ErrCodigoInvalido
	}
	if !c.Semestre.IsValid() {
		return ErrSemestreInvalido
	}
	if !c.Resultado.IsValid() {
		return ErrResultadoInvalido
	}
	if c.CreditosAula < 0 || c.CreditosTrabalho < 0 {
		return ErrCreditosNegativos
	}
	return nil
}

// Chave retorna a chave (código, versão) da cursada.
func (c Cursada) Chave() Chave {
	return Chave{Codigo: c.Codigo, Versao: c.Versao}
}

// String retorna a representação textual para logs.
func (c Cursada) String() string {
	return fmt.Sprintf("Cursada{%s v%d, %s, %s}", c.Codigo, c.Versao, c.Semestre, c.Resultado)
}

// Chave identifica unicamente uma disciplina dentro de um catálogo.
type Chave struct {
	Codigo CodigoDisciplina
	Versao int
}

// String retorna a representação "CODIGO vN".
func (ch Chave) String() string {
	return fmt.Sprintf("%s v%d", ch.Codigo, ch.Versao)
}

// ══════════════════════════════════════════════════════════════════════════════
// SELEÇÃO DA MELHOR TENTATIVA
// ══════════════════════════════════════════════════════════════════════════════

// melhor compara duas tentativas da mesma disciplina e retorna a vencedora.
// Critério de desempate: aprovação vence qualquer outro resultado; entre duas
// aprovações, vence o semestre mais recente.
func melhor(a, b Cursada) Cursada {
	switch {
	case a.Resultado.Conta() && !b.Resultado.Conta():
		return a
	case !a.Resultado.Conta() && b.Resultado.Conta():
		return b
	case a.Resultado.Conta() && b.Resultado.Conta():
		if b.Semestre.After(a.Semestre) {
			return b
		}
		return a
	default:
		// Nenhuma aprovada: mantém a mais recente para fins informativos.
		if b.Semestre.After(a.Semestre) {
			return b
		}
		return a
	}
}

// Deduplicar seleciona, para cada chave (código, versão), a melhor tentativa.
// As demais tentativas são descartadas e não contam créditos em dobro.
// A ordem de saída segue a primeira ocorrência de cada chave na entrada,
// mantendo o resultado determinístico.
func Deduplicar(cursadas []Cursada) []Cursada {
	vencedoras := make(map[Chave]Cursada, len(cursadas))
	ordem := make([]Chave, 0, len(cursadas))

	for _, c := range cursadas {
		ch := c.Chave()
		atual, vista := vencedoras[ch]
		if !vista {
			vencedoras[ch] = c
			ordem = append(ordem, ch)
			continue
		}
		vencedoras[ch] = melhor(atual, c)
	}

	resultado := make([]Cursada, 0, len(ordem))
	for _, ch := range ordem {
		resultado = append(resultado, vencedoras[ch])
	}
	return resultado
}

// Aprovadas filtra apenas as cursadas com aprovação.
func Aprovadas(cursadas []Cursada) []Cursada {
	aprovadas := make([]Cursada, 0, len(cursadas))
	for _, c := range cursadas {
		if c.Resultado.Conta() {
			aprovadas = append(aprovadas, c)
		}
	}
	return aprovadas
}
