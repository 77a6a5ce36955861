package evolucao

import (
	"golang.org/x/sync/errgroup"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/regras"
)

// ══════════════════════════════════════════════════════════════════════════════
// MOTOR DE REGRAS
// Blocos e regras de trilha compartilham a mesma primitiva: interseção das
// disciplinas concluídas distintas com a lista elegível, satisfeita quando a
// contagem e os créditos somados atingem os mínimos. Avaliações são mutuamente
// independentes; blocos e trilhas são avaliados em paralelo dentro de uma
// mesma invocação, sem requisito de ordem entre eles.
//
// Código elegível que não existe em catálogo nenhum simplesmente nunca casa:
// é exclusão silenciosa, condição de qualidade de dados e não falha do motor.
// ══════════════════════════════════════════════════════════════════════════════

// perfilConclusoes indexa as conclusões do aluno por código de disciplina.
// Versões múltiplas do mesmo código contam uma única vez: vale a primeira
// ocorrência na ordem deduplicada, mantendo o resultado determinístico.
type perfilConclusoes struct {
	creditos map[historico.CodigoDisciplina]Creditos
}

func novoPerfil(classificadas []DisciplinaClassificada) perfilConclusoes {
	p := perfilConclusoes{
		creditos: make(map[historico.CodigoDisciplina]Creditos, len(classificadas)),
	}
	for _, c := range classificadas {
		codigo := c.Cursada.Codigo
		if _, visto := p.creditos[codigo]; visto {
			continue
		}
		p.creditos[codigo] = Creditos{
			AulaObtidos:     c.Cursada.CreditosAula,
			TrabalhoObtidos: c.Cursada.CreditosTrabalho,
		}
	}
	return p
}

// AvaliarExigencia aplica a primitiva de avaliação a uma exigência.
// Determinística: entradas idênticas produzem sempre a mesma avaliação.
func (p perfilConclusoes) AvaliarExigencia(e regras.Exigencia) AvaliacaoExigencia {
	av := AvaliacaoExigencia{
		Cumpridas: make([]historico.CodigoDisciplina, 0, len(e.Codigos)),
	}

	vistos := make(map[historico.CodigoDisciplina]bool, len(e.Codigos))
	for _, codigo := range e.Codigos {
		if vistos[codigo] {
			continue
		}
		vistos[codigo] = true

		cred, concluida := p.creditos[codigo]
		if !concluida {
			continue
		}
		av.Cumpridas = append(av.Cumpridas, codigo)
		av.CreditosAula += cred.AulaObtidos
		av.CreditosTrabalho += cred.TrabalhoObtidos
	}

	av.Satisfeito = len(av.Cumpridas) >= e.MinimoDisciplinas &&
		av.CreditosAula >= e.MinimoCreditosAula &&
		av.CreditosTrabalho >= e.MinimoCreditosTrabalho

	return av
}

// AvaliarBlocos avalia cada bloco de forma independente. A saída preserva a
// ordem do cadastro mesmo com avaliação concorrente.
func AvaliarBlocos(classificadas []DisciplinaClassificada, blocos []regras.Bloco) []AvaliacaoBloco {
	if len(blocos) == 0 {
		return nil
	}

	perfil := novoPerfil(classificadas)
	avaliacoes := make([]AvaliacaoBloco, len(blocos))

	var g errgroup.Group
	for i, b := range blocos {
		g.Go(func() error {
			avaliacoes[i] = AvaliacaoBloco{
				BlocoID:   b.ID,
				Nome:      b.Nome,
				Avaliacao: perfil.AvaliarExigencia(b.Exigencia),
			}
			return nil
		})
	}
	// Avaliações não falham; o grupo existe só pela sincronização.
	_ = g.Wait()

	return avaliacoes
}

// AvaliarTrilhas avalia cada trilha de forma independente. Dentro da trilha,
// regras também são independentes: uma disciplina pode contar para mais de
// uma regra se aparecer em mais de uma lista elegível.
func AvaliarTrilhas(classificadas []DisciplinaClassificada, trilhas []regras.Trilha) []AvaliacaoTrilha {
	if len(trilhas) == 0 {
		return nil
	}

	perfil := novoPerfil(classificadas)
	avaliacoes := make([]AvaliacaoTrilha, len(trilhas))

	var g errgroup.Group
	for i, t := range trilhas {
		g.Go(func() error {
			avaliacoes[i] = avaliarTrilha(perfil, t)
			return nil
		})
	}
	_ = g.Wait()

	return avaliacoes
}

func avaliarTrilha(perfil perfilConclusoes, t regras.Trilha) AvaliacaoTrilha {
	av := AvaliacaoTrilha{
		TrilhaID:       t.ID,
		Nome:           t.Nome,
		Regras:         make([]AvaliacaoRegra, 0, len(t.Regras)),
		NucleoCumprido: true,
		Completa:       true,
	}

	for _, r := range t.Regras {
		avaliacao := perfil.AvaliarExigencia(r.Exigencia)
		av.Regras = append(av.Regras, AvaliacaoRegra{
			RegraID:   r.ID,
			Nome:      r.Nome,
			Nucleo:    r.Nucleo,
			Avaliacao: avaliacao,
		})

		if !avaliacao.Satisfeito {
			av.Completa = false
			if r.Nucleo {
				av.NucleoCumprido = false
			}
		}
	}

	return av
}
