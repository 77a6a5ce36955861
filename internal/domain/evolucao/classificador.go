package evolucao

import (
	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLASSIFICADOR
// Primeiro estágio do cálculo: deduplica o histórico (melhor tentativa por
// chave), descarta tentativas sem aprovação e marca cada conclusão com a
// categoria da vaga correspondente na grade - ou extracurricular quando não
// há vaga. Função pura, sem efeitos colaterais.
// ══════════════════════════════════════════════════════════════════════════════

// Classificar marca cada conclusão do histórico com sua categoria resolvida.
// A ordem de saída segue a ordem do histórico deduplicado, o que mantém a
// resolução de equivalências determinística.
func Classificar(cursadas []historico.Cursada, cur *curriculo.Curriculo) []DisciplinaClassificada {
	concluidas := historico.Aprovadas(historico.Deduplicar(cursadas))

	classificadas := make([]DisciplinaClassificada, 0, len(concluidas))
	for _, c := range concluidas {
		dc := DisciplinaClassificada{
			Cursada:       c,
			Classificacao: ClassificacaoExtracurricular,
		}

		if vaga, ok := cur.Vaga(c.Chave()); ok {
			dc.Classificacao = DaCategoria(vaga.Categoria)
			ch := vaga.Chave()
			dc.Vaga = &ch
		}

		classificadas = append(classificadas, dc)
	}
	return classificadas
}
