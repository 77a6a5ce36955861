package evolucao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

func TestClassificar_CategoriasDaGrade(t *testing.T) {
	cur := gradeBCC(t)

	classificadas := Classificar([]historico.Cursada{
		aprovada("MAC0110", 4, 20231), // obrigatória
		aprovada("MAC0420", 4, 20241), // eletiva
		aprovada("FLC0474", 2, 20232), // livre
		aprovada("MAE0121", 4, 20232), // sem vaga na grade
	}, cur)

	require.Len(t, classificadas, 4)
	assert.Equal(t, ClassificacaoObrigatoria, classificadas[0].Classificacao)
	assert.Equal(t, ClassificacaoEletiva, classificadas[1].Classificacao)
	assert.Equal(t, ClassificacaoLivre, classificadas[2].Classificacao)
	assert.Equal(t, ClassificacaoExtracurricular, classificadas[3].Classificacao)

	// Casamento direto preenche a própria vaga, sem equivalência.
	require.NotNil(t, classificadas[0].Vaga)
	assert.Equal(t, historico.CodigoDisciplina("MAC0110"), classificadas[0].Vaga.Codigo)
	assert.False(t, classificadas[0].ViaEquivalencia)
	assert.Nil(t, classificadas[3].Vaga)
}

func TestClassificar_ReprovacaoNaoContaCreditos(t *testing.T) {
	cur := gradeBCC(t)

	// Reprovou e depois aprovou: só a aprovação sobrevive e os créditos
	// contam uma vez.
	classificadas := Classificar([]historico.Cursada{
		reprovada("MAC0110", 4, 20222),
		aprovada("MAC0110", 4, 20231),
	}, cur)

	require.Len(t, classificadas, 1)
	assert.Equal(t, historico.ResultadoAprovado, classificadas[0].Cursada.Resultado)
	assert.Equal(t, 4, classificadas[0].Cursada.CreditosAula)
}

func TestClassificar_SomenteReprovacoesNaoViraConclusao(t *testing.T) {
	cur := gradeBCC(t)

	classificadas := Classificar([]historico.Cursada{
		reprovada("MAC0110", 4, 20222),
	}, cur)

	assert.Empty(t, classificadas)
}

func TestClassificar_EmCursoNaoConta(t *testing.T) {
	cur := gradeBCC(t)

	emCurso := aprovada("MAC0338", 4, 20241)
	emCurso.Resultado = historico.ResultadoEmCurso

	classificadas := Classificar([]historico.Cursada{emCurso}, cur)
	assert.Empty(t, classificadas)
}

func TestClassificar_ParticionaSemPerderNemDuplicar(t *testing.T) {
	cur := gradeBCC(t)

	cursadas := []historico.Cursada{
		aprovada("MAC0110", 4, 20231),
		reprovada("MAT2453", 6, 20222),
		aprovada("MAT2453", 6, 20231),
		aprovada("MAE0121", 4, 20232),
		aprovada("FLC0474", 2, 20232),
	}

	classificadas := Classificar(cursadas, cur)

	// 4 chaves distintas aprovadas; nenhuma some, nenhuma duplica.
	require.Len(t, classificadas, 4)
	vistas := make(map[historico.Chave]int)
	for _, c := range classificadas {
		vistas[c.Cursada.Chave()]++
	}
	for chave, n := range vistas {
		assert.Equal(t, 1, n, "chave %s apareceu %d vezes", chave, n)
	}
}
