package evolucao

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

// gradeBCC monta um currículo pequeno de teste: três obrigatórias, uma
// eletiva, uma livre e um grupo de equivalência MAC0110 ~ MAC0115.
func gradeBCC(t *testing.T) *curriculo.Curriculo {
	t.Helper()

	cur, err := curriculo.NewCurriculo("45052-2021", "45052", "Ciência da Computação", 8,
		[]curriculo.DisciplinaGrade{
			{Codigo: "MAC0110", Versao: 1, Categoria: curriculo.CategoriaObrigatoria, SemestreIdeal: 1, CreditosAula: 4},
			{Codigo: "MAT2453", Versao: 1, Categoria: curriculo.CategoriaObrigatoria, SemestreIdeal: 1, CreditosAula: 6},
			{Codigo: "MAC0338", Versao: 1, Categoria: curriculo.CategoriaObrigatoria, SemestreIdeal: 6, CreditosAula: 4},
			{Codigo: "MAC0420", Versao: 1, Categoria: curriculo.CategoriaEletiva, SemestreIdeal: 7, CreditosAula: 4},
			{Codigo: "FLC0474", Versao: 1, Categoria: curriculo.CategoriaLivre, SemestreIdeal: 5, CreditosAula: 2},
		},
		[]curriculo.GrupoEquivalencia{
			{ID: "eq-1", Codigos: []historico.CodigoDisciplina{"MAC0110", "MAC0115"}},
		})
	require.NoError(t, err)
	return cur
}

func aprovada(codigo string, creditosAula int, semestre historico.Semestre) historico.Cursada {
	return historico.Cursada{
		Codigo:       historico.CodigoDisciplina(codigo),
		Versao:       1,
		CreditosAula: creditosAula,
		Resultado:    historico.ResultadoAprovado,
		Semestre:     semestre,
	}
}

func reprovada(codigo string, creditosAula int, semestre historico.Semestre) historico.Cursada {
	c := aprovada(codigo, creditosAula, semestre)
	c.Resultado = historico.ResultadoReprovado
	return c
}
