package curriculo

import (
	"errors"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

// ══════════════════════════════════════════════════════════════════════════════
// GRUPOS DE EQUIVALÊNCIA
// Grupos declaram códigos de disciplina intercambiáveis para fins de
// preenchimento de vaga. Cadeias transitivas (A~B num grupo, B~C em outro)
// são resolvidas uma única vez na carga, via fecho por união de componentes -
// a resolução em si nunca percorre grafo, o que garante terminação.
// ══════════════════════════════════════════════════════════════════════════════

// GrupoEquivalencia é um conjunto de códigos declarados equivalentes entre si.
type GrupoEquivalencia struct {
	// ID - identificador do grupo no cadastro local.
	ID string

	// Codigos - códigos intercambiáveis.
	Codigos []historico.CodigoDisciplina
}

// ErrGrupoVazio - grupo de equivalência precisa de ao menos dois códigos.
var ErrGrupoVazio = errors.New("equivalence group needs at least two codes")

// Validate verifica os invariantes do grupo.
func (g GrupoEquivalencia) Validate() error {
	if len(g.Codigos) < 2 {
		return ErrGrupoVazio
	}
	for _, c := range g.Codigos {
		if !c.IsValid() {
			return historico.ErrCodigoInvalido
		}
	}
	return nil
}

// IndiceEquivalencias mapeia cada código para o componente de equivalência a
// que pertence. Construído uma vez na carga do currículo; consultas são O(1).
type IndiceEquivalencias struct {
	componente map[historico.CodigoDisciplina]int
	membros    [][]historico.CodigoDisciplina
}

// NewIndiceEquivalencias constrói o índice a partir dos grupos cadastrados,
// unindo componentes que compartilham códigos (fecho transitivo). O número de
// passes é limitado pelo número de grupos, então a construção sempre termina.
func NewIndiceEquivalencias(grupos []GrupoEquivalencia) (*IndiceEquivalencias, error) {
	idx := &IndiceEquivalencias{
		componente: make(map[historico.CodigoDisciplina]int),
	}

	for _, g := range grupos {
		if err := g.Validate(); err != nil {
			return nil, err
		}

		// Componentes já tocados por algum código deste grupo.
		alvo := -1
		for _, c := range g.Codigos {
			if comp, ok := idx.componente[c]; ok {
				if alvo == -1 || comp < alvo {
					alvo = comp
				}
			}
		}

		if alvo == -1 {
			// Grupo inteiramente novo: vira um componente próprio.
			alvo = len(idx.membros)
			idx.membros = append(idx.membros, nil)
		}

		for _, c := range g.Codigos {
			comp, ok := idx.componente[c]
			if !ok {
				idx.componente[c] = alvo
				idx.membros[alvo] = append(idx.membros[alvo], c)
				continue
			}
			if comp == alvo {
				continue
			}
			// Funde o componente antigo no alvo.
			for _, m := range idx.membros[comp] {
				idx.componente[m] = alvo
				idx.membros[alvo] = append(idx.membros[alvo], m)
			}
			idx.membros[comp] = nil
		}
	}

	return idx, nil
}

// Equivalentes retorna true se os dois códigos pertencem ao mesmo componente
// de equivalência. Um código nunca é equivalente a outro fora de grupo; a
// igualdade direta não conta como equivalência.
func (i *IndiceEquivalencias) Equivalentes(a, b historico.CodigoDisciplina) bool {
	if i == nil {
		return false
	}
	ca, ok := i.componente[a]
	if !ok {
		return false
	}
	cb, ok := i.componente[b]
	if !ok {
		return false
	}
	return ca == cb
}

// Componente retorna todos os códigos equivalentes ao código dado, incluindo
// ele próprio. Retorna nil se o código não pertence a nenhum grupo.
func (i *IndiceEquivalencias) Componente(c historico.CodigoDisciplina) []historico.CodigoDisciplina {
	if i == nil {
		return nil
	}
	comp, ok := i.componente[c]
	if !ok {
		return nil
	}
	membros := make([]historico.CodigoDisciplina, len(i.membros[comp]))
	copy(membros, i.membros[comp])
	return membros
}

// Tamanho retorna o número de códigos indexados.
func (i *IndiceEquivalencias) Tamanho() int {
	if i == nil {
		return 0
	}
	return len(i.componente)
}
