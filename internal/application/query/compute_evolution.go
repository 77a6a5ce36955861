// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"time"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/evolucao"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/regras"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
	"github.com/evolucao-hub/evolucao-academica/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPUTE EVOLUTION QUERY
// Ponto de entrada público do cálculo de evolução: busca o histórico no
// registro, o currículo e as tabelas de exigência no cadastro local, roda o
// motor puro e devolve o relatório. Qualquer falha de obtenção de dados é
// fatal - correção acima de disponibilidade, porque o resultado alimenta
// documentos oficiais.
// ══════════════════════════════════════════════════════════════════════════════

// ComputeEvolutionQuery contém os parâmetros do cálculo.
type ComputeEvolutionQuery struct {
	// NUSP - identificação do aluno no registro corporativo.
	NUSP historico.NUSP

	// CurriculoID - currículo contra o qual calcular.
	CurriculoID string

	// IgnorarCache - força o recálculo mesmo com relatório em cache.
	IgnorarCache bool
}

// Validate verifica a corretude dos parâmetros.
func (q *ComputeEvolutionQuery) Validate() error {
	if !q.NUSP.IsValid() {
		return historico.ErrNUSPInvalido
	}
	if q.CurriculoID == "" {
		return curriculo.ErrIDVazio
	}
	return nil
}

// EvolucaoCache abstrai o cache de relatórios (implementado em Redis).
// O cache é opcional: um handler sem cache recalcula sempre.
type EvolucaoCache interface {
	// Get retorna o relatório em cache, ou shared.ErrNotFound.
	Get(ctx context.Context, nusp historico.NUSP, curriculoID string) (*evolucao.Evolucao, error)

	// Set guarda o relatório com TTL definido pela implementação.
	Set(ctx context.Context, ev *evolucao.Evolucao) error
}

// ComputeEvolutionHandler orquestra o cálculo de evolução.
type ComputeEvolutionHandler struct {
	historicos historico.Provider
	curriculos curriculo.Provider
	exigencias regras.Provider
	engine     *evolucao.Engine
	cache      EvolucaoCache // opcional
	log        *logger.Logger
}

// NewComputeEvolutionHandler cria o handler com injeção explícita dos
// providers - nenhum I/O escondido dentro do motor.
func NewComputeEvolutionHandler(
	historicos historico.Provider,
	curriculos curriculo.Provider,
	exigencias regras.Provider,
	engine *evolucao.Engine,
	cache EvolucaoCache,
	log *logger.Logger,
) *ComputeEvolutionHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ComputeEvolutionHandler{
		historicos: historicos,
		curriculos: curriculos,
		exigencias: exigencias,
		engine:     engine,
		cache:      cache,
		log:        log.With(logger.Component("compute_evolution")),
	}
}

// Handle executa o cálculo. Erros de obtenção de dados abortam a computação
// inteira e sobem inalterados; não existe relatório parcial ou degradado.
func (h *ComputeEvolutionHandler) Handle(ctx context.Context, q ComputeEvolutionQuery) (*evolucao.Evolucao, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	inicio := time.Now()
	log := h.log.With(logger.NUSP(q.NUSP.String()), logger.CurriculoID(q.CurriculoID))

	if h.cache != nil && !q.IgnorarCache {
		ev, err := h.cache.Get(ctx, q.NUSP, q.CurriculoID)
		if err == nil {
			log.Debug("evolucao servida do cache")
			return ev, nil
		}
		if !shared.IsNotFound(err) {
			// Cache fora do ar não derruba o cálculo.
			log.Warn("falha ao consultar cache de evolucao", logger.Err(err))
		}
	}

	cursadas, err := h.historicos.HistoricoDoAluno(ctx, q.NUSP)
	if err != nil {
		log.Error("falha ao obter historico do registro", logger.Err(err))
		return nil, err
	}

	cur, err := h.curriculos.CurriculoPorID(ctx, q.CurriculoID)
	if err != nil {
		log.Error("falha ao obter curriculo", logger.Err(err))
		return nil, err
	}

	conjunto, err := h.exigencias.ConjuntoPorCurriculo(ctx, q.CurriculoID)
	if err != nil {
		log.Error("falha ao obter tabelas de exigencia", logger.Err(err))
		return nil, err
	}

	ev, err := h.engine.Compute(q.NUSP, cur, conjunto, cursadas)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, ev); err != nil {
			log.Warn("falha ao guardar evolucao no cache", logger.Err(err))
		}
	}

	log.Info("evolucao calculada",
		logger.Int("conclusoes", ev.TotalClassificadas()),
		logger.Int("blocos", len(ev.Blocos)),
		logger.Int("trilhas", len(ev.Trilhas)),
		logger.Latency(time.Since(inicio)),
	)

	return ev, nil
}
