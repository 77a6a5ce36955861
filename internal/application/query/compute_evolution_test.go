package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/evolucao"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/regras"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
)

// ─── stubs ───────────────────────────────────────────────────────────────────

type historicoStub struct {
	cursadas []historico.Cursada
	err      error
	chamadas int
}

func (s *historicoStub) HistoricoDoAluno(_ context.Context, _ historico.NUSP) ([]historico.Cursada, error) {
	s.chamadas++
	return s.cursadas, s.err
}

type curriculoStub struct {
	cur *curriculo.Curriculo
	err error
}

func (s *curriculoStub) CurriculoPorID(_ context.Context, _ string) (*curriculo.Curriculo, error) {
	return s.cur, s.err
}

type regrasStub struct {
	conjunto regras.Conjunto
	err      error
}

func (s *regrasStub) ConjuntoPorCurriculo(_ context.Context, _ string) (regras.Conjunto, error) {
	return s.conjunto, s.err
}

type cacheStub struct {
	guardada *evolucao.Evolucao
	getErr   error
	sets     int
}

func (s *cacheStub) Get(_ context.Context, _ historico.NUSP, _ string) (*evolucao.Evolucao, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.guardada == nil {
		return nil, shared.ErrNotFound
	}
	return s.guardada, nil
}

func (s *cacheStub) Set(_ context.Context, ev *evolucao.Evolucao) error {
	s.sets++
	s.guardada = ev
	return nil
}

func curriculoTeste(t *testing.T) *curriculo.Curriculo {
	t.Helper()
	cur, err := curriculo.NewCurriculo("45052-2021", "45052", "Ciência da Computação", 8,
		[]curriculo.DisciplinaGrade{
			{Codigo: "MAC0110", Versao: 4, Nome: "Introdução à Computação", Categoria: curriculo.CategoriaObrigatoria, SemestreIdeal: 1, CreditosAula: 4},
			{Codigo: "MAC0420", Versao: 1, Nome: "Computação Gráfica", Categoria: curriculo.CategoriaEletiva, SemestreIdeal: 7, CreditosAula: 4},
		}, nil)
	require.NoError(t, err)
	return cur
}

func aprovacao(codigo string) historico.Cursada {
	return historico.Cursada{
		Codigo:       historico.CodigoDisciplina(codigo),
		Versao:       4,
		Semestre:     20231,
		Resultado:    historico.ResultadoAprovado,
		CreditosAula: 4,
	}
}

// ─── testes ──────────────────────────────────────────────────────────────────

func TestComputeEvolution_FluxoCompleto(t *testing.T) {
	h := NewComputeEvolutionHandler(
		&historicoStub{cursadas: []historico.Cursada{aprovacao("MAC0110")}},
		&curriculoStub{cur: curriculoTeste(t)},
		&regrasStub{},
		evolucao.NewEngine(nil),
		nil,
		nil,
	)

	ev, err := h.Handle(context.Background(), ComputeEvolutionQuery{
		NUSP:        "12345678",
		CurriculoID: "45052-2021",
	})

	require.NoError(t, err)
	assert.Equal(t, historico.NUSP("12345678"), ev.NUSP)
	assert.Len(t, ev.Obrigatorias, 1)
}

func TestComputeEvolution_ValidacaoDosParametros(t *testing.T) {
	h := NewComputeEvolutionHandler(&historicoStub{}, &curriculoStub{}, &regrasStub{}, evolucao.NewEngine(nil), nil, nil)

	_, err := h.Handle(context.Background(), ComputeEvolutionQuery{NUSP: "abc", CurriculoID: "x"})
	assert.ErrorIs(t, err, historico.ErrNUSPInvalido)

	_, err = h.Handle(context.Background(), ComputeEvolutionQuery{NUSP: "12345678"})
	assert.ErrorIs(t, err, curriculo.ErrIDVazio)
}

func TestComputeEvolution_FalhaNoRegistroEhFatal(t *testing.T) {
	h := NewComputeEvolutionHandler(
		&historicoStub{err: shared.ErrHistoricoUnavailable},
		&curriculoStub{cur: curriculoTeste(t)},
		&regrasStub{},
		evolucao.NewEngine(nil),
		nil,
		nil,
	)

	_, err := h.Handle(context.Background(), ComputeEvolutionQuery{NUSP: "12345678", CurriculoID: "45052-2021"})
	assert.ErrorIs(t, err, shared.ErrHistoricoUnavailable)
}

func TestComputeEvolution_CurriculoInexistente(t *testing.T) {
	h := NewComputeEvolutionHandler(
		&historicoStub{},
		&curriculoStub{err: shared.ErrCurriculoNotFound},
		&regrasStub{},
		evolucao.NewEngine(nil),
		nil,
		nil,
	)

	_, err := h.Handle(context.Background(), ComputeEvolutionQuery{NUSP: "12345678", CurriculoID: "nada"})
	assert.True(t, shared.IsNotFound(err))
}

func TestComputeEvolution_CacheAside(t *testing.T) {
	historicos := &historicoStub{cursadas: []historico.Cursada{aprovacao("MAC0110")}}
	cache := &cacheStub{}
	h := NewComputeEvolutionHandler(
		historicos,
		&curriculoStub{cur: curriculoTeste(t)},
		&regrasStub{},
		evolucao.NewEngine(nil),
		cache,
		nil,
	)

	q := ComputeEvolutionQuery{NUSP: "12345678", CurriculoID: "45052-2021"}

	// Primeira chamada calcula e guarda.
	primeiro, err := h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, historicos.chamadas)

	// Segunda chamada serve do cache sem tocar o registro.
	segundo, err := h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, primeiro.ID, segundo.ID)
	assert.Equal(t, 1, historicos.chamadas)
}

func TestComputeEvolution_IgnorarCacheForcaRecalculo(t *testing.T) {
	historicos := &historicoStub{cursadas: []historico.Cursada{aprovacao("MAC0110")}}
	cache := &cacheStub{}
	h := NewComputeEvolutionHandler(
		historicos,
		&curriculoStub{cur: curriculoTeste(t)},
		&regrasStub{},
		evolucao.NewEngine(nil),
		cache,
		nil,
	)

	q := ComputeEvolutionQuery{NUSP: "12345678", CurriculoID: "45052-2021"}
	_, err := h.Handle(context.Background(), q)
	require.NoError(t, err)

	q.IgnorarCache = true
	_, err = h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, historicos.chamadas)
	assert.Equal(t, 2, cache.sets)
}

func TestComputeEvolution_CacheIndisponivelNaoDerrubaCalculo(t *testing.T) {
	cache := &cacheStub{getErr: errors.New("connection refused")}
	h := NewComputeEvolutionHandler(
		&historicoStub{cursadas: []historico.Cursada{aprovacao("MAC0110")}},
		&curriculoStub{cur: curriculoTeste(t)},
		&regrasStub{},
		evolucao.NewEngine(nil),
		cache,
		nil,
	)

	ev, err := h.Handle(context.Background(), ComputeEvolutionQuery{NUSP: "12345678", CurriculoID: "45052-2021"})
	require.NoError(t, err)
	assert.NotNil(t, ev)
}
