package historico

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROVIDER INTERFACE
// O histórico vem pronto do registro corporativo; o motor de evolução nunca
// faz I/O diretamente. Implementações ficam em infrastructure/external.
// ══════════════════════════════════════════════════════════════════════════════

// Provider fornece o histórico escolar completo de um aluno.
type Provider interface {
	// HistoricoDoAluno retorna todas as tentativas registradas para o aluno,
	// na ordem do documento original.
	// Retorna shared.ErrAlunoNotFound se o aluno não existe no registro e
	// shared.ErrHistoricoUnavailable em falhas de comunicação. Qualquer erro
	// é fatal para o cálculo - não há resultado parcial.
	HistoricoDoAluno(ctx context.Context, nusp NUSP) ([]Cursada, error)
}
