package evolucao

import (
	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESOLUÇÃO DE EQUIVALÊNCIAS
// Segundo estágio: tenta realocar conclusões extracurriculares em vagas
// obrigatórias e eletivas ainda não preenchidas, via grupos de equivalência.
// Casamento bipartido um-para-um: cada conclusão preenche no máximo uma vaga
// e cada vaga é preenchida por no máximo uma conclusão. As vagas são
// percorridas na ordem da grade e, entre candidatas, vence a primeira
// conclusão na ordem do documento - resultado determinístico.
//
// A pertinência a grupo é consulta direta ao índice com fecho pré-calculado
// (curriculo.IndiceEquivalencias); não há travessia de grafo aqui, então a
// resolução é um único passe limitado sobre as vagas.
// ══════════════════════════════════════════════════════════════════════════════

// ResolverEquivalencias promove conclusões extracurriculares a vagas
// não preenchidas da grade. Retorna uma nova fatia; a entrada não é mutada.
// Rodar duas vezes sobre um resultado já resolvido é um no-op: conclusões
// promovidas deixam de ser extracurriculares e vagas preenchidas deixam de
// ser candidatas.
func ResolverEquivalencias(classificadas []DisciplinaClassificada, cur *curriculo.Curriculo) []DisciplinaClassificada {
	resultado := make([]DisciplinaClassificada, len(classificadas))
	copy(resultado, classificadas)

	preenchidas := vagasPreenchidas(resultado)

	for _, vaga := range cur.Disciplinas {
		if vaga.Categoria != curriculo.CategoriaObrigatoria && vaga.Categoria != curriculo.CategoriaEletiva {
			continue
		}
		ch := vaga.Chave()
		if preenchidas[ch] {
			continue
		}

		for i := range resultado {
			c := &resultado[i]
			if c.Classificacao != ClassificacaoExtracurricular || c.Vaga != nil {
				continue
			}
			if !cur.Equivalencias.Equivalentes(c.Cursada.Codigo, vaga.Codigo) {
				continue
			}

			chave := ch
			c.Classificacao = DaCategoria(vaga.Categoria)
			c.Vaga = &chave
			c.ViaEquivalencia = true
			preenchidas[ch] = true
			break
		}
	}

	return resultado
}

// VagasPendentes retorna as vagas obrigatórias e eletivas da grade que nenhuma
// conclusão preenche, na ordem do documento curricular. É o insumo do
// agregador de créditos ("exigido mas faltante") e do cálculo de estágio.
func VagasPendentes(classificadas []DisciplinaClassificada, cur *curriculo.Curriculo) []curriculo.DisciplinaGrade {
	preenchidas := vagasPreenchidas(classificadas)

	pendentes := make([]curriculo.DisciplinaGrade, 0)
	for _, vaga := range cur.Disciplinas {
		if vaga.Categoria != curriculo.CategoriaObrigatoria && vaga.Categoria != curriculo.CategoriaEletiva {
			continue
		}
		if !preenchidas[vaga.Chave()] {
			pendentes = append(pendentes, vaga)
		}
	}
	return pendentes
}

func vagasPreenchidas(classificadas []DisciplinaClassificada) map[historico.Chave]bool {
	preenchidas := make(map[historico.Chave]bool, len(classificadas))
	for _, c := range classificadas {
		if c.Vaga != nil {
			preenchidas[*c.Vaga] = true
		}
	}
	return preenchidas
}
