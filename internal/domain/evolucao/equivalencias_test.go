package evolucao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

func TestResolverEquivalencias_PromoveParaVagaObrigatoria(t *testing.T) {
	cur := gradeBCC(t)

	// MAC0115 não está na grade, mas é equivalente a MAC0110 (vaga obrigatória
	// não preenchida): deve ser promovida.
	classificadas := Classificar([]historico.Cursada{
		aprovada("MAC0115", 4, 20231),
	}, cur)
	require.Equal(t, ClassificacaoExtracurricular, classificadas[0].Classificacao)

	resolvidas := ResolverEquivalencias(classificadas, cur)

	require.Len(t, resolvidas, 1)
	assert.Equal(t, ClassificacaoObrigatoria, resolvidas[0].Classificacao)
	assert.True(t, resolvidas[0].ViaEquivalencia)
	require.NotNil(t, resolvidas[0].Vaga)
	assert.Equal(t, historico.CodigoDisciplina("MAC0110"), resolvidas[0].Vaga.Codigo)

	// A vaga deixa de constar como pendente.
	for _, vaga := range VagasPendentes(resolvidas, cur) {
		assert.NotEqual(t, historico.CodigoDisciplina("MAC0110"), vaga.Codigo)
	}
}

func TestResolverEquivalencias_VagaJaPreenchidaNaoEDuplicada(t *testing.T) {
	cur := gradeBCC(t)

	// MAC0110 cursada diretamente; MAC0115 equivalente fica extracurricular
	// porque a vaga já está preenchida (casamento um-para-um).
	classificadas := Classificar([]historico.Cursada{
		aprovada("MAC0110", 4, 20231),
		aprovada("MAC0115", 4, 20232),
	}, cur)

	resolvidas := ResolverEquivalencias(classificadas, cur)

	require.Len(t, resolvidas, 2)
	assert.Equal(t, ClassificacaoObrigatoria, resolvidas[0].Classificacao)
	assert.Equal(t, ClassificacaoExtracurricular, resolvidas[1].Classificacao)
}

func TestResolverEquivalencias_PrimeiraCandidataNaOrdemDoDocumentoVence(t *testing.T) {
	cur, err := curriculo.NewCurriculo("X-2021", "X", "Teste", 8,
		[]curriculo.DisciplinaGrade{
			{Codigo: "AAA0100", Versao: 1, Categoria: curriculo.CategoriaObrigatoria, SemestreIdeal: 1, CreditosAula: 4},
		},
		[]curriculo.GrupoEquivalencia{
			{ID: "g", Codigos: []historico.CodigoDisciplina{"AAA0100", "BBB0100", "CCC0100"}},
		})
	require.NoError(t, err)

	// Duas extracurriculares equivalentes à mesma vaga: vence a primeira na
	// ordem do documento.
	classificadas := Classificar([]historico.Cursada{
		aprovada("BBB0100", 4, 20231),
		aprovada("CCC0100", 4, 20231),
	}, cur)

	resolvidas := ResolverEquivalencias(classificadas, cur)

	assert.Equal(t, ClassificacaoObrigatoria, resolvidas[0].Classificacao)
	assert.Equal(t, ClassificacaoExtracurricular, resolvidas[1].Classificacao)
}

func TestResolverEquivalencias_CadaConclusaoPreencheNoMaximoUmaVaga(t *testing.T) {
	cur, err := curriculo.NewCurriculo("X-2021", "X", "Teste", 8,
		[]curriculo.DisciplinaGrade{
			{Codigo: "AAA0100", Versao: 1, Categoria: curriculo.CategoriaObrigatoria, SemestreIdeal: 1, CreditosAula: 4},
			{Codigo: "DDD0100", Versao: 1, Categoria: curriculo.CategoriaObrigatoria, SemestreIdeal: 2, CreditosAula: 4},
		},
		[]curriculo.GrupoEquivalencia{
			// BBB0100 é equivalente às duas vagas, mas só pode preencher uma.
			{ID: "g1", Codigos: []historico.CodigoDisciplina{"AAA0100", "BBB0100"}},
			{ID: "g2", Codigos: []historico.CodigoDisciplina{"DDD0100", "BBB0100"}},
		})
	require.NoError(t, err)

	classificadas := Classificar([]historico.Cursada{
		aprovada("BBB0100", 4, 20231),
	}, cur)

	resolvidas := ResolverEquivalencias(classificadas, cur)

	require.Len(t, resolvidas, 1)
	assert.Equal(t, ClassificacaoObrigatoria, resolvidas[0].Classificacao)
	// Apenas uma das duas vagas foi preenchida.
	assert.Len(t, VagasPendentes(resolvidas, cur), 1)
}

func TestResolverEquivalencias_Idempotente(t *testing.T) {
	cur := gradeBCC(t)

	classificadas := Classificar([]historico.Cursada{
		aprovada("MAC0115", 4, 20231),
		aprovada("MAE0121", 4, 20232),
	}, cur)

	umaVez := ResolverEquivalencias(classificadas, cur)
	duasVezes := ResolverEquivalencias(umaVez, cur)

	assert.Equal(t, umaVez, duasVezes)
}

func TestResolverEquivalencias_NaoMutaEntrada(t *testing.T) {
	cur := gradeBCC(t)

	classificadas := Classificar([]historico.Cursada{
		aprovada("MAC0115", 4, 20231),
	}, cur)
	original := classificadas[0].Classificacao

	_ = ResolverEquivalencias(classificadas, cur)

	assert.Equal(t, original, classificadas[0].Classificacao)
}

func TestVagasPendentes_OrdemDaGrade(t *testing.T) {
	cur := gradeBCC(t)

	classificadas := Classificar([]historico.Cursada{
		aprovada("MAT2453", 6, 20231),
	}, cur)

	pendentes := VagasPendentes(classificadas, cur)

	// Obrigatórias e eletivas não preenchidas, na ordem da grade; a livre
	// não entra no cálculo de pendência.
	require.Len(t, pendentes, 3)
	assert.Equal(t, historico.CodigoDisciplina("MAC0110"), pendentes[0].Codigo)
	assert.Equal(t, historico.CodigoDisciplina("MAC0338"), pendentes[1].Codigo)
	assert.Equal(t, historico.CodigoDisciplina("MAC0420"), pendentes[2].Codigo)
}
