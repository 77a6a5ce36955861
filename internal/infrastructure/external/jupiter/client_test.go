package jupiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
)

func clienteDeTeste(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultClientConfig(srv.URL)
	cfg.MaxRetries = 1
	cfg.RetryBaseDelay = time.Millisecond
	cfg.RateLimiterConfig = RateLimiterConfig{
		RequestsPerMinute: 6000,
		BurstSize:         100,
		MinInterval:       0,
		WaitTimeout:       time.Second,
	}
	return NewClient(cfg)
}

func TestClient_HistoricoDoAluno(t *testing.T) {
	c := clienteDeTeste(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historicoEscolar.jsp", r.URL.Path)
		assert.Equal(t, "12345678", r.URL.Query().Get("codpes"))
		w.Write([]byte(paginaHistorico))
	})

	cursadas, err := c.HistoricoDoAluno(context.Background(), "12345678")
	require.NoError(t, err)
	require.Len(t, cursadas, 4)
	assert.Equal(t, historico.CodigoDisciplina("MAC0110"), cursadas[0].Codigo)
}

func TestClient_HistoricoDoAluno_NUSPInvalido(t *testing.T) {
	c := clienteDeTeste(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the registry")
	})

	_, err := c.HistoricoDoAluno(context.Background(), "abc")
	assert.ErrorIs(t, err, historico.ErrNUSPInvalido)
}

func TestClient_HistoricoDoAluno_AlunoInexistente(t *testing.T) {
	c := clienteDeTeste(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>Nenhum aluno encontrado.</body></html>`))
	})

	_, err := c.HistoricoDoAluno(context.Background(), "99999999")
	assert.True(t, shared.IsNotFound(err))
}

func TestClient_HistoricoDoAluno_RetentaErro5xx(t *testing.T) {
	tentativas := 0
	c := clienteDeTeste(t, func(w http.ResponseWriter, r *http.Request) {
		tentativas++
		if tentativas == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(paginaHistorico))
	})

	cursadas, err := c.HistoricoDoAluno(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, 2, tentativas)
	assert.Len(t, cursadas, 4)
}

func TestClient_HistoricoDoAluno_RegistroForaDoAr(t *testing.T) {
	c := clienteDeTeste(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.HistoricoDoAluno(context.Background(), "12345678")
	require.Error(t, err)
	assert.True(t, shared.IsExternalService(err))
}

func TestClient_HistoricoDoAluno_PaginaIrreconhecivel(t *testing.T) {
	c := clienteDeTeste(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>layout novo</p></body></html>`))
	})

	_, err := c.HistoricoDoAluno(context.Background(), "12345678")
	require.Error(t, err)
	assert.True(t, shared.IsDataInconsistency(err))
}
