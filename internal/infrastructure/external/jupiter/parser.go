package jupiter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

// Parsing errors.
var (
	// ErrTabelaNaoEncontrada is returned when the transcript table is missing.
	// Usually means the registry changed its page layout.
	ErrTabelaNaoEncontrada = errors.New("transcript table not found in page")

	// ErrAlunoDesconhecido is returned when the page reports an unknown student.
	ErrAlunoDesconhecido = errors.New("student not found in registry page")
)

// parseHistorico extracts the attempt rows from the transcript page.
// The registry renders one row per attempt; repeated attempts of the same
// discipline appear as separate rows and are kept as-is. Deduplication is a
// domain concern, not a parsing one.
func parseHistorico(doc *goquery.Document) ([]historico.Cursada, error) {
	if paginaSemAluno(doc) {
		return nil, ErrAlunoDesconhecido
	}

	table := doc.Find("table.historicoEscolar").First()
	if table.Length() == 0 {
		return nil, ErrTabelaNaoEncontrada
	}

	// Header order varies between course pages, so columns are resolved by
	// name instead of position.
	headerNames := []string{}
	table.Find("thead tr th").Each(func(_ int, s *goquery.Selection) {
		headerNames = append(headerNames, strings.TrimSpace(s.Text()))
	})
	if len(headerNames) == 0 {
		return nil, ErrTabelaNaoEncontrada
	}

	var (
		cursadas []historico.Cursada
		parseErr error
	)

	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		if parseErr != nil {
			return
		}

		var c historico.Cursada
		row.Find("td").Each(func(j int, cell *goquery.Selection) {
			if parseErr != nil || j >= len(headerNames) {
				return
			}
			valor := strings.TrimSpace(cell.Text())

			switch headerNames[j] {
			case "Código":
				c.Codigo = historico.CodigoDisciplina(valor)
			case "Versão":
				c.Versao = atoiOuZero(valor)
			case "Disciplina":
				c.Nome = valor
			case "Créd. Aula":
				c.CreditosAula = atoiOuZero(valor)
			case "Créd. Trab.":
				c.CreditosTrabalho = atoiOuZero(valor)
			case "Semestre":
				sem, err := parseSemestre(valor)
				if err != nil {
					parseErr = fmt.Errorf("row %d: %w", i, err)
					return
				}
				c.Semestre = sem
			case "Nota":
				if nota, err := strconv.ParseFloat(strings.ReplaceAll(valor, ",", "."), 64); err == nil {
					c.Nota = &nota
				}
			case "Resultado":
				res, err := parseResultado(valor)
				if err != nil {
					parseErr = fmt.Errorf("row %d: %w", i, err)
					return
				}
				c.Resultado = res
			}
		})

		if parseErr != nil {
			return
		}
		if c.Codigo == "" {
			// Separator and subtotal rows carry no code.
			return
		}
		if c.Versao == 0 {
			c.Versao = 1
		}
		if err := c.Validate(); err != nil {
			parseErr = fmt.Errorf("row %d (%s): %w", i, c.Codigo, err)
			return
		}
		cursadas = append(cursadas, c)
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return cursadas, nil
}

// paginaSemAluno detects the registry's "no student" response, which comes
// back with HTTP 200 and an error message in the body.
func paginaSemAluno(doc *goquery.Document) bool {
	texto := doc.Find("body").Text()
	return strings.Contains(texto, "Nenhum aluno encontrado") ||
		strings.Contains(texto, "não foi encontrado")
}

// parseSemestre accepts both "2023/1" and "20231" renderings.
func parseSemestre(valor string) (historico.Semestre, error) {
	valor = strings.TrimSpace(valor)

	if ano, periodo, ok := strings.Cut(valor, "/"); ok {
		a := atoiOuZero(ano)
		p := atoiOuZero(periodo)
		sem := historico.Semestre(a*10 + p)
		if !sem.IsValid() {
			return 0, fmt.Errorf("%w: %q", historico.ErrSemestreInvalido, valor)
		}
		return sem, nil
	}

	sem := historico.Semestre(atoiOuZero(valor))
	if !sem.IsValid() {
		return 0, fmt.Errorf("%w: %q", historico.ErrSemestreInvalido, valor)
	}
	return sem, nil
}

// parseResultado maps the registry's status codes to domain results.
func parseResultado(valor string) (historico.Resultado, error) {
	switch strings.ToUpper(strings.TrimSpace(valor)) {
	case "A", "APROVADO", "AP":
		return historico.ResultadoAprovado, nil
	case "RN", "RF", "RA", "REPROVADO":
		return historico.ResultadoReprovado, nil
	case "MA", "MATRICULADO", "EM CURSO":
		return historico.ResultadoEmCurso, nil
	case "T", "TR", "TRANCADO", "TRANCAMENTO":
		return historico.ResultadoTrancado, nil
	default:
		return "", fmt.Errorf("%w: %q", historico.ErrResultadoInvalido, valor)
	}
}

func atoiOuZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
