package postgres

import (
	"context"
	"fmt"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CURRICULUM REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CurriculoRepository implements curriculo.Provider for PostgreSQL.
type CurriculoRepository struct {
	conn *Connection
}

// NewCurriculoRepository creates a new CurriculoRepository.
func NewCurriculoRepository(conn *Connection) *CurriculoRepository {
	return &CurriculoRepository{conn: conn}
}

// CurriculoPorID loads the full curriculum aggregate: the grade rows in
// document order plus the equivalence groups. The aggregate invariants are
// re-validated on load through curriculo.NewCurriculo.
func (r *CurriculoRepository) CurriculoPorID(ctx context.Context, id string) (*curriculo.Curriculo, error) {
	query := `
		SELECT id, curso_id, nome, duracao_semestres
		FROM curriculos
		WHERE id = $1
	`

	var (
		curriculoID string
		cursoID     string
		nome        string
		duracao     int
	)
	err := r.conn.QueryRow(ctx, query, id).Scan(&curriculoID, &cursoID, &nome, &duracao)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrCurriculoNotFound
		}
		return nil, fmt.Errorf("load curriculum %s: %w", id, err)
	}

	disciplinas, err := r.disciplinasDoCurriculo(ctx, curriculoID)
	if err != nil {
		return nil, err
	}

	grupos, err := r.gruposDoCurriculo(ctx, curriculoID)
	if err != nil {
		return nil, err
	}

	return curriculo.NewCurriculo(curriculoID, cursoID, nome, duracao, disciplinas, grupos)
}

// disciplinasDoCurriculo loads the grade rows ordered by document position.
func (r *CurriculoRepository) disciplinasDoCurriculo(ctx context.Context, curriculoID string) ([]curriculo.DisciplinaGrade, error) {
	query := `
		SELECT codigo, versao, nome, categoria, semestre_ideal, creditos_aula, creditos_trabalho
		FROM curriculo_disciplinas
		WHERE curriculo_id = $1
		ORDER BY posicao
	`

	rows, err := r.conn.Query(ctx, query, curriculoID)
	if err != nil {
		return nil, fmt.Errorf("load curriculum disciplines %s: %w", curriculoID, err)
	}
	defer rows.Close()

	var disciplinas []curriculo.DisciplinaGrade
	for rows.Next() {
		var (
			d         curriculo.DisciplinaGrade
			codigo    string
			categoria string
		)
		if err := rows.Scan(&codigo, &d.Versao, &d.Nome, &categoria,
			&d.SemestreIdeal, &d.CreditosAula, &d.CreditosTrabalho); err != nil {
			return nil, fmt.Errorf("scan discipline row: %w", err)
		}
		d.Codigo = historico.CodigoDisciplina(codigo)
		d.Categoria = curriculo.Categoria(categoria)
		disciplinas = append(disciplinas, d)
	}
	return disciplinas, rows.Err()
}

// gruposDoCurriculo loads equivalence groups with their member codes.
func (r *CurriculoRepository) gruposDoCurriculo(ctx context.Context, curriculoID string) ([]curriculo.GrupoEquivalencia, error) {
	query := `
		SELECT g.id, m.codigo
		FROM equivalencia_grupos g
		JOIN equivalencia_membros m ON m.grupo_id = g.id
		WHERE g.curriculo_id = $1
		ORDER BY g.id, m.codigo
	`

	rows, err := r.conn.Query(ctx, query, curriculoID)
	if err != nil {
		return nil, fmt.Errorf("load equivalence groups %s: %w", curriculoID, err)
	}
	defer rows.Close()

	porGrupo := make(map[string][]historico.CodigoDisciplina)
	var ordem []string
	for rows.Next() {
		var grupoID, codigo string
		if err := rows.Scan(&grupoID, &codigo); err != nil {
			return nil, fmt.Errorf("scan equivalence row: %w", err)
		}
		if _, visto := porGrupo[grupoID]; !visto {
			ordem = append(ordem, grupoID)
		}
		porGrupo[grupoID] = append(porGrupo[grupoID], historico.CodigoDisciplina(codigo))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	grupos := make([]curriculo.GrupoEquivalencia, 0, len(ordem))
	for _, id := range ordem {
		grupos = append(grupos, curriculo.GrupoEquivalencia{ID: id, Codigos: porGrupo[id]})
	}
	return grupos, nil
}
