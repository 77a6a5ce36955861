package jupiter

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

const paginaHistorico = `
<html><body>
<h2>Histórico Escolar</h2>
<table class="historicoEscolar">
  <thead>
    <tr>
      <th>Código</th><th>Versão</th><th>Disciplina</th>
      <th>Créd. Aula</th><th>Créd. Trab.</th>
      <th>Semestre</th><th>Nota</th><th>Resultado</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td>MAC0110</td><td>4</td><td>Introdução à Computação</td>
      <td>4</td><td>0</td><td>2022/2</td><td>3,5</td><td>RN</td>
    </tr>
    <tr>
      <td>MAC0110</td><td>4</td><td>Introdução à Computação</td>
      <td>4</td><td>0</td><td>2023/1</td><td>8,0</td><td>A</td>
    </tr>
    <tr>
      <td>MAT2453</td><td>1</td><td>Cálculo I</td>
      <td>6</td><td>0</td><td>2023/1</td><td>6,5</td><td>Aprovado</td>
    </tr>
    <tr>
      <td>MAC0499</td><td>2</td><td>Trabalho de Formatura</td>
      <td>0</td><td>8</td><td>2024/2</td><td>--</td><td>MA</td>
    </tr>
    <tr class="subtotal"><td></td><td></td><td>Total do semestre</td><td>10</td><td></td><td></td><td></td><td></td></tr>
  </tbody>
</table>
</body></html>`

func documento(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseHistorico(t *testing.T) {
	cursadas, err := parseHistorico(documento(t, paginaHistorico))
	require.NoError(t, err)

	// As duas tentativas de MAC0110 permanecem separadas: a deduplicação
	// acontece no domínio.
	require.Len(t, cursadas, 4)

	assert.Equal(t, historico.CodigoDisciplina("MAC0110"), cursadas[0].Codigo)
	assert.Equal(t, 4, cursadas[0].Versao)
	assert.Equal(t, historico.ResultadoReprovado, cursadas[0].Resultado)
	assert.Equal(t, historico.Semestre(20222), cursadas[0].Semestre)
	require.NotNil(t, cursadas[0].Nota)
	assert.Equal(t, 3.5, *cursadas[0].Nota)

	assert.Equal(t, historico.ResultadoAprovado, cursadas[1].Resultado)
	assert.Equal(t, historico.Semestre(20231), cursadas[1].Semestre)

	assert.Equal(t, historico.CodigoDisciplina("MAT2453"), cursadas[2].Codigo)
	assert.Equal(t, 6, cursadas[2].CreditosAula)

	assert.Equal(t, historico.ResultadoEmCurso, cursadas[3].Resultado)
	assert.Equal(t, 8, cursadas[3].CreditosTrabalho)
	assert.Nil(t, cursadas[3].Nota)
}

func TestParseHistorico_TabelaAusente(t *testing.T) {
	_, err := parseHistorico(documento(t, `<html><body><p>manutenção</p></body></html>`))
	assert.ErrorIs(t, err, ErrTabelaNaoEncontrada)
}

func TestParseHistorico_AlunoDesconhecido(t *testing.T) {
	_, err := parseHistorico(documento(t, `<html><body><p>Nenhum aluno encontrado.</p></body></html>`))
	assert.ErrorIs(t, err, ErrAlunoDesconhecido)
}

func TestParseHistorico_ResultadoDesconhecido(t *testing.T) {
	html := `<html><body><table class="historicoEscolar">
	<thead><tr><th>Código</th><th>Semestre</th><th>Resultado</th></tr></thead>
	<tbody><tr><td>MAC0110</td><td>2023/1</td><td>XYZ</td></tr></tbody>
	</table></body></html>`

	_, err := parseHistorico(documento(t, html))
	assert.ErrorIs(t, err, historico.ErrResultadoInvalido)
}

func TestParseSemestre(t *testing.T) {
	sem, err := parseSemestre("2023/1")
	require.NoError(t, err)
	assert.Equal(t, historico.Semestre(20231), sem)

	sem, err = parseSemestre("20242")
	require.NoError(t, err)
	assert.Equal(t, historico.Semestre(20242), sem)

	_, err = parseSemestre("2023/3")
	assert.Error(t, err)

	_, err = parseSemestre("")
	assert.Error(t, err)
}

func TestParseResultado(t *testing.T) {
	casos := map[string]historico.Resultado{
		"A":         historico.ResultadoAprovado,
		"Aprovado":  historico.ResultadoAprovado,
		"RN":        historico.ResultadoReprovado,
		"RF":        historico.ResultadoReprovado,
		"MA":        historico.ResultadoEmCurso,
		"T":         historico.ResultadoTrancado,
		"Trancado":  historico.ResultadoTrancado,
	}
	for entrada, esperado := range casos {
		res, err := parseResultado(entrada)
		require.NoError(t, err, entrada)
		assert.Equal(t, esperado, res, entrada)
	}
}
