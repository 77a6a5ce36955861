package evolucao

import (
	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
)

// ══════════════════════════════════════════════════════════════════════════════
// CÁLCULO DO SEMESTRE DE ESTÁGIO
// Deriva o semestre a partir do qual o aluno pode iniciar estágio obrigatório
// ou opcional: o semestre ideal da última vaga obrigatória ainda não cumprida,
// ou a duração nominal do currículo quando todas estão cumpridas. Constantes
// por curso (mínimo absoluto) são dado de configuração, não lógica do motor.
// ══════════════════════════════════════════════════════════════════════════════

// ParametrosEstagio são as constantes de negócio por curso.
type ParametrosEstagio struct {
	// SemestreMinimo - piso do semestre elegível, independente da evolução
	// (0 = sem piso). Varia por curso; vem do arquivo de configuração.
	SemestreMinimo int `yaml:"semestre_minimo" json:"semestreMinimo"`
}

// SemestreEstagio calcula o semestre a partir do qual o estágio é permitido.
// Determinístico, sem efeitos colaterais: depende só da classificação já
// montada, da grade e dos parâmetros do curso.
func SemestreEstagio(classificadas []DisciplinaClassificada, cur *curriculo.Curriculo, params ParametrosEstagio) int {
	semestre := 0
	for _, vaga := range VagasPendentes(classificadas, cur) {
		if vaga.Categoria != curriculo.CategoriaObrigatoria {
			continue
		}
		if vaga.SemestreIdeal > semestre {
			semestre = vaga.SemestreIdeal
		}
	}

	if semestre == 0 {
		// Todas as obrigatórias cumpridas.
		semestre = cur.DuracaoSemestres
	}

	if params.SemestreMinimo > semestre {
		semestre = params.SemestreMinimo
	}
	return semestre
}
