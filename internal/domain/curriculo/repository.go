package curriculo

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROVIDER INTERFACE
// O currículo e as equivalências vêm do cadastro local; implementações ficam
// em infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Provider fornece currículos completos, com equivalências já materializadas.
type Provider interface {
	// CurriculoPorID retorna o currículo identificado, já validado
	// (sem chaves duplicadas) e com o índice de equivalências construído.
	// Retorna shared.ErrCurriculoNotFound se o currículo não existe.
	// Qualquer erro é fatal para o cálculo de evolução.
	CurriculoPorID(ctx context.Context, id string) (*Curriculo, error)
}
