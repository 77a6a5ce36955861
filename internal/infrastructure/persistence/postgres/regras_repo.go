package postgres

import (
	"context"
	"fmt"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/regras"
)

// ══════════════════════════════════════════════════════════════════════════════
// RULE SET REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// RegrasRepository implements regras.Provider for PostgreSQL.
type RegrasRepository struct {
	conn *Connection
}

// NewRegrasRepository creates a new RegrasRepository.
func NewRegrasRepository(conn *Connection) *RegrasRepository {
	return &RegrasRepository{conn: conn}
}

// ConjuntoPorCurriculo loads the blocks and tracks registered for a
// curriculum. A curriculum without rules yields an empty set, not an error.
func (r *RegrasRepository) ConjuntoPorCurriculo(ctx context.Context, curriculoID string) (regras.Conjunto, error) {
	blocos, err := r.blocosDoCurriculo(ctx, curriculoID)
	if err != nil {
		return regras.Conjunto{}, err
	}

	trilhas, err := r.trilhasDoCurriculo(ctx, curriculoID)
	if err != nil {
		return regras.Conjunto{}, err
	}

	return regras.Conjunto{Blocos: blocos, Trilhas: trilhas}, nil
}

func (r *RegrasRepository) blocosDoCurriculo(ctx context.Context, curriculoID string) ([]regras.Bloco, error) {
	query := `
		SELECT id, nome, minimo_disciplinas, minimo_creditos_aula, minimo_creditos_trabalho
		FROM blocos
		WHERE curriculo_id = $1
		ORDER BY posicao
	`

	rows, err := r.conn.Query(ctx, query, curriculoID)
	if err != nil {
		return nil, fmt.Errorf("load blocks %s: %w", curriculoID, err)
	}
	defer rows.Close()

	var blocos []regras.Bloco
	for rows.Next() {
		var b regras.Bloco
		if err := rows.Scan(&b.ID, &b.Nome, &b.Exigencia.MinimoDisciplinas,
			&b.Exigencia.MinimoCreditosAula, &b.Exigencia.MinimoCreditosTrabalho); err != nil {
			return nil, fmt.Errorf("scan block row: %w", err)
		}
		blocos = append(blocos, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range blocos {
		codigos, err := r.codigosElegiveis(ctx, "bloco_codigos", "bloco_id", blocos[i].ID)
		if err != nil {
			return nil, err
		}
		blocos[i].Exigencia.Codigos = codigos
	}
	return blocos, nil
}

func (r *RegrasRepository) trilhasDoCurriculo(ctx context.Context, curriculoID string) ([]regras.Trilha, error) {
	query := `
		SELECT id, nome
		FROM trilhas
		WHERE curriculo_id = $1
		ORDER BY posicao
	`

	rows, err := r.conn.Query(ctx, query, curriculoID)
	if err != nil {
		return nil, fmt.Errorf("load tracks %s: %w", curriculoID, err)
	}
	defer rows.Close()

	var trilhas []regras.Trilha
	for rows.Next() {
		var t regras.Trilha
		if err := rows.Scan(&t.ID, &t.Nome); err != nil {
			return nil, fmt.Errorf("scan track row: %w", err)
		}
		trilhas = append(trilhas, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range trilhas {
		regrasDaTrilha, err := r.regrasDaTrilha(ctx, trilhas[i].ID)
		if err != nil {
			return nil, err
		}
		trilhas[i].Regras = regrasDaTrilha
	}
	return trilhas, nil
}

func (r *RegrasRepository) regrasDaTrilha(ctx context.Context, trilhaID string) ([]regras.Regra, error) {
	query := `
		SELECT id, nome, nucleo, minimo_disciplinas, minimo_creditos_aula, minimo_creditos_trabalho
		FROM trilha_regras
		WHERE trilha_id = $1
		ORDER BY posicao
	`

	rows, err := r.conn.Query(ctx, query, trilhaID)
	if err != nil {
		return nil, fmt.Errorf("load track rules %s: %w", trilhaID, err)
	}
	defer rows.Close()

	var lista []regras.Regra
	for rows.Next() {
		var rg regras.Regra
		if err := rows.Scan(&rg.ID, &rg.Nome, &rg.Nucleo, &rg.Exigencia.MinimoDisciplinas,
			&rg.Exigencia.MinimoCreditosAula, &rg.Exigencia.MinimoCreditosTrabalho); err != nil {
			return nil, fmt.Errorf("scan rule row: %w", err)
		}
		lista = append(lista, rg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lista {
		codigos, err := r.codigosElegiveis(ctx, "regra_codigos", "regra_id", lista[i].ID)
		if err != nil {
			return nil, err
		}
		lista[i].Exigencia.Codigos = codigos
	}
	return lista, nil
}

// codigosElegiveis loads an eligible-code list in document order.
// Table and column names are fixed literals at the call sites, never user
// input, so the Sprintf cannot inject.
func (r *RegrasRepository) codigosElegiveis(ctx context.Context, tabela, coluna, id string) ([]historico.CodigoDisciplina, error) {
	query := fmt.Sprintf(
		"SELECT codigo FROM %s WHERE %s = $1 ORDER BY posicao",
		tabela, coluna,
	)

	rows, err := r.conn.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("load eligible codes %s: %w", id, err)
	}
	defer rows.Close()

	var codigos []historico.CodigoDisciplina
	for rows.Next() {
		var codigo string
		if err := rows.Scan(&codigo); err != nil {
			return nil, fmt.Errorf("scan code row: %w", err)
		}
		codigos = append(codigos, historico.CodigoDisciplina(codigo))
	}
	return codigos, rows.Err()
}
