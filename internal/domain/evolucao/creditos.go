package evolucao

import (
	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
)

// ══════════════════════════════════════════════════════════════════════════════
// AGREGADOR DE CRÉDITOS
// Terceiro estágio: soma créditos obtidos por categoria (cada disciplina
// conta uma vez - garantido pela deduplicação do classificador) e créditos
// exigidos direto das vagas da grade. O percentual por categoria é derivado
// e limitado a [0, 100] para absorver sobre-conclusão por equivalências.
// ══════════════════════════════════════════════════════════════════════════════

// AgregarCreditos monta o quadro de créditos por categoria a partir das
// conclusões já resolvidas e da grade.
func AgregarCreditos(classificadas []DisciplinaClassificada, cur *curriculo.Curriculo) QuadroCreditos {
	quadro := QuadroCreditos{}

	for _, c := range classificadas {
		obtidos := Creditos{
			AulaObtidos:     c.Cursada.CreditosAula,
			TrabalhoObtidos: c.Cursada.CreditosTrabalho,
		}
		switch c.Classificacao {
		case ClassificacaoObrigatoria:
			quadro.Obrigatorias = quadro.Obrigatorias.Soma(obtidos)
		case ClassificacaoEletiva:
			quadro.Eletivas = quadro.Eletivas.Soma(obtidos)
		case ClassificacaoLivre:
			quadro.Livres = quadro.Livres.Soma(obtidos)
		case ClassificacaoExtracurricular:
			quadro.Extracurriculares = quadro.Extracurriculares.Soma(obtidos)
		}
	}

	for _, vaga := range cur.Disciplinas {
		exigidos := Creditos{
			AulaExigidos:     vaga.CreditosAula,
			TrabalhoExigidos: vaga.CreditosTrabalho,
		}
		switch vaga.Categoria {
		case curriculo.CategoriaObrigatoria:
			quadro.Obrigatorias = quadro.Obrigatorias.Soma(exigidos)
		case curriculo.CategoriaEletiva:
			quadro.Eletivas = quadro.Eletivas.Soma(exigidos)
		case curriculo.CategoriaLivre:
			quadro.Livres = quadro.Livres.Soma(exigidos)
		}
	}

	// Total geral cobre só as categorias da grade; extracurriculares não
	// entram no denominador nem no numerador.
	quadro.Total = quadro.Obrigatorias.Soma(quadro.Eletivas).Soma(quadro.Livres)

	// Os percentuais derivados viajam no relatório serializado.
	quadro.Obrigatorias.Percentual = quadro.Obrigatorias.percentualDerivado()
	quadro.Eletivas.Percentual = quadro.Eletivas.percentualDerivado()
	quadro.Livres.Percentual = quadro.Livres.percentualDerivado()
	quadro.Extracurriculares.Percentual = quadro.Extracurriculares.percentualDerivado()
	quadro.Total.Percentual = quadro.Total.percentualDerivado()

	return quadro
}
