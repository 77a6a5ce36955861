package evolucao

import (
	"time"

	"github.com/google/uuid"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/regras"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MOTOR DE EVOLUÇÃO
// Composição pura dos estágios: classificar → resolver equivalências →
// agregar créditos → avaliar exigências → calcular estágio → montar o
// relatório. Uma invocação processa um par (aluno, currículo) até o fim, sem
// pontos de suspensão; invocações concorrentes para alunos diferentes são
// seguras porque não há estado compartilhado.
// ══════════════════════════════════════════════════════════════════════════════

// Engine executa o cálculo de evolução. Único estado é a tabela de
// parâmetros de estágio por curso, imutável após a construção.
type Engine struct {
	estagioPorCurso map[string]ParametrosEstagio
}

// NewEngine cria o motor com as constantes de negócio por curso.
// A tabela pode ser vazia; cursos sem entrada usam os parâmetros zero.
func NewEngine(estagioPorCurso map[string]ParametrosEstagio) *Engine {
	tabela := make(map[string]ParametrosEstagio, len(estagioPorCurso))
	for curso, p := range estagioPorCurso {
		tabela[curso] = p
	}
	return &Engine{estagioPorCurso: tabela}
}

// Compute calcula a evolução de um aluno num currículo. Entradas já
// materializadas pelos providers; nenhuma falha parcial - ou o relatório
// inteiro, ou erro.
func (e *Engine) Compute(nusp historico.NUSP, cur *curriculo.Curriculo, conjunto regras.Conjunto, cursadas []historico.Cursada) (*Evolucao, error) {
	classificadas := Classificar(cursadas, cur)
	classificadas = ResolverEquivalencias(classificadas, cur)

	quadro := AgregarCreditos(classificadas, cur)
	blocos := AvaliarBlocos(classificadas, conjunto.Blocos)
	trilhas := AvaliarTrilhas(classificadas, conjunto.Trilhas)

	params := e.estagioPorCurso[cur.CursoID]
	semestreEstagio := SemestreEstagio(classificadas, cur, params)

	return montar(nusp, cur, classificadas, quadro, blocos, trilhas, semestreEstagio)
}

// montar compõe o relatório imutável e verifica os invariantes finais: cada
// conclusão aparece em exatamente um balde e nenhum total de créditos é
// negativo. Violações indicam bug no pipeline, nunca dado do aluno.
func montar(
	nusp historico.NUSP,
	cur *curriculo.Curriculo,
	classificadas []DisciplinaClassificada,
	quadro QuadroCreditos,
	blocos []AvaliacaoBloco,
	trilhas []AvaliacaoTrilha,
	semestreEstagio int,
) (*Evolucao, error) {
	ev := &Evolucao{
		ID:              uuid.New(),
		NUSP:            nusp,
		CurriculoID:     cur.ID,
		GeradaEm:        time.Now().UTC(),
		Creditos:        quadro,
		VagasPendentes:  VagasPendentes(classificadas, cur),
		Blocos:          blocos,
		Trilhas:         trilhas,
		SemestreEstagio: semestreEstagio,
	}

	for _, c := range classificadas {
		switch c.Classificacao {
		case ClassificacaoObrigatoria:
			ev.Obrigatorias = append(ev.Obrigatorias, c)
		case ClassificacaoEletiva:
			ev.Eletivas = append(ev.Eletivas, c)
		case ClassificacaoLivre:
			ev.Livres = append(ev.Livres, c)
		case ClassificacaoExtracurricular:
			ev.Extracurriculares = append(ev.Extracurriculares, c)
		default:
			return nil, shared.ErrEvolucaoIncompleta
		}
	}

	if ev.TotalClassificadas() != len(classificadas) {
		return nil, shared.ErrEvolucaoIncompleta
	}

	for _, c := range []Creditos{
		quadro.Obrigatorias, quadro.Eletivas, quadro.Livres,
		quadro.Extracurriculares, quadro.Total,
	} {
		if c.AulaObtidos < 0 || c.TrabalhoObtidos < 0 || c.AulaExigidos < 0 || c.TrabalhoExigidos < 0 {
			return nil, shared.ErrCreditosNegativos
		}
	}

	return ev, nil
}
