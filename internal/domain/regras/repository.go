package regras

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROVIDER INTERFACE
// As tabelas de exigência são cadastro local, mantidas fora deste núcleo por
// uma interface administrativa. Implementações ficam em
// infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Provider fornece as tabelas de exigência de um currículo.
type Provider interface {
	// ConjuntoPorCurriculo retorna blocos e trilhas cadastrados para o
	// currículo. Um conjunto vazio é válido e não é erro.
	ConjuntoPorCurriculo(ctx context.Context, curriculoID string) (Conjunto, error)
}
