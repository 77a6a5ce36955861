package historico

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemestre_Ordering(t *testing.T) {
	assert.True(t, Semestre(20242).After(Semestre(20241)))
	assert.True(t, Semestre(20241).After(Semestre(20232)))
	assert.False(t, Semestre(20231).After(Semestre(20231)))
	assert.Equal(t, "2024/1", Semestre(20241).String())
}

func TestSemestre_IsValid(t *testing.T) {
	assert.True(t, Semestre(20241).IsValid())
	assert.True(t, Semestre(19982).IsValid())
	assert.False(t, Semestre(20243).IsValid())
	assert.False(t, Semestre(2024).IsValid())
	assert.False(t, Semestre(0).IsValid())
}

func TestNUSP_IsValid(t *testing.T) {
	assert.True(t, NUSP("1234567").IsValid())
	assert.False(t, NUSP("12ab567").IsValid())
	assert.False(t, NUSP("123").IsValid())
	assert.False(t, NUSP("").IsValid())
}

func TestCodigoDisciplina_IsValid(t *testing.T) {
	assert.True(t, CodigoDisciplina("MAC0110").IsValid())
	assert.True(t, CodigoDisciplina("ACH").IsValid())
	assert.True(t, CodigoDisciplina("MAC0110EAD").IsValid())
	assert.False(t, CodigoDisciplina("MA").IsValid())
	assert.False(t, CodigoDisciplina("MAC0110-TURMA-2").IsValid())
	assert.False(t, CodigoDisciplina("MAC 110").IsValid())
}

func TestCursada_Validate(t *testing.T) {
	valida := Cursada{
		Codigo:       "MAC0110",
		Versao:       1,
		CreditosAula: 4,
		Resultado:    ResultadoAprovado,
		Semestre:     20231,
	}
	require.NoError(t, valida.Validate())

	semCodigo := valida
	semCodigo.Codigo = ""
	assert.ErrorIs(t, semCodigo.Validate(), ErrCodigoInvalido)

	resultadoRuim := valida
	resultadoRuim.Resultado = "abandonou"
	assert.ErrorIs(t, resultadoRuim.Validate(), ErrResultadoInvalido)

	creditosRuins := valida
	creditosRuins.CreditosAula = -1
	assert.ErrorIs(t, creditosRuins.Validate(), ErrCreditosNegativos)
}

func TestDeduplicar_ReprovacaoDepoisAprovacao(t *testing.T) {
	// Reprovou em 2022/2, aprovou em 2023/1: só a aprovação sobrevive.
	cursadas := []Cursada{
		{Codigo: "MAC0110", Versao: 1, CreditosAula: 4, Resultado: ResultadoReprovado, Semestre: 20222},
		{Codigo: "MAC0110", Versao: 1, CreditosAula: 4, Resultado: ResultadoAprovado, Semestre: 20231},
	}

	resultado := Deduplicar(cursadas)

	require.Len(t, resultado, 1)
	assert.Equal(t, ResultadoAprovado, resultado[0].Resultado)
	assert.Equal(t, Semestre(20231), resultado[0].Semestre)
}

func TestDeduplicar_DuasAprovacoesVenceMaisRecente(t *testing.T) {
	cursadas := []Cursada{
		{Codigo: "MAT2453", Versao: 2, Resultado: ResultadoAprovado, Semestre: 20211},
		{Codigo: "MAT2453", Versao: 2, Resultado: ResultadoAprovado, Semestre: 20232},
	}

	resultado := Deduplicar(cursadas)

	require.Len(t, resultado, 1)
	assert.Equal(t, Semestre(20232), resultado[0].Semestre)
}

func TestDeduplicar_AprovacaoAntesDeReprovacaoPosterior(t *testing.T) {
	// Aprovação antiga vence reprovação mais recente (versão diferente de catálogo
	// seria outra chave; aqui é a mesma).
	cursadas := []Cursada{
		{Codigo: "MAC0121", Versao: 1, Resultado: ResultadoAprovado, Semestre: 20221},
		{Codigo: "MAC0121", Versao: 1, Resultado: ResultadoReprovado, Semestre: 20222},
	}

	resultado := Deduplicar(cursadas)

	require.Len(t, resultado, 1)
	assert.Equal(t, ResultadoAprovado, resultado[0].Resultado)
}

func TestDeduplicar_VersoesDiferentesSaoChavesDiferentes(t *testing.T) {
	cursadas := []Cursada{
		{Codigo: "MAC0110", Versao: 1, Resultado: ResultadoAprovado, Semestre: 20201},
		{Codigo: "MAC0110", Versao: 2, Resultado: ResultadoAprovado, Semestre: 20231},
	}

	resultado := Deduplicar(cursadas)
	assert.Len(t, resultado, 2)
}

func TestDeduplicar_PreservaOrdemDaPrimeiraOcorrencia(t *testing.T) {
	cursadas := []Cursada{
		{Codigo: "MAC0110", Versao: 1, Resultado: ResultadoReprovado, Semestre: 20221},
		{Codigo: "MAT2453", Versao: 1, Resultado: ResultadoAprovado, Semestre: 20221},
		{Codigo: "MAC0110", Versao: 1, Resultado: ResultadoAprovado, Semestre: 20231},
	}

	resultado := Deduplicar(cursadas)

	require.Len(t, resultado, 2)
	assert.Equal(t, CodigoDisciplina("MAC0110"), resultado[0].Codigo)
	assert.Equal(t, CodigoDisciplina("MAT2453"), resultado[1].Codigo)
}

func TestAprovadas(t *testing.T) {
	cursadas := []Cursada{
		{Codigo: "MAC0110", Resultado: ResultadoAprovado, Semestre: 20231},
		{Codigo: "MAC0121", Resultado: ResultadoEmCurso, Semestre: 20241},
		{Codigo: "MAT2453", Resultado: ResultadoTrancado, Semestre: 20232},
	}

	aprovadas := Aprovadas(cursadas)

	require.Len(t, aprovadas, 1)
	assert.Equal(t, CodigoDisciplina("MAC0110"), aprovadas[0].Codigo)
}
