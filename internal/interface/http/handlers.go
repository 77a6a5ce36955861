package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evolucao-hub/evolucao-academica/internal/application/query"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVOLUTION ENDPOINT
// ══════════════════════════════════════════════════════════════════════════════

// handleEvolucao serves GET /api/v1/alunos/:nusp/evolucao?curriculo=<id>.
// The optional recalcular=true query parameter bypasses the report cache.
func (s *Server) handleEvolucao(c *gin.Context) {
	q := query.ComputeEvolutionQuery{
		NUSP:         historico.NUSP(c.Param("nusp")),
		CurriculoID:  c.Query("curriculo"),
		IgnorarCache: queryFlag(c, "recalcular"),
	}

	ev, err := s.deps.Evolucao.Handle(c.Request.Context(), q)
	if err != nil {
		status, code := statusDoErro(err)
		c.JSON(status, errorBody(code, err.Error()))
		return
	}

	c.JSON(http.StatusOK, ev)
}

// statusDoErro maps domain errors onto HTTP status codes. Registry data the
// parser cannot make sense of is an upstream fault, hence 502 and not 500.
func statusDoErro(err error) (int, string) {
	switch {
	case errors.Is(err, historico.ErrNUSPInvalido),
		errors.Is(err, curriculo.ErrIDVazio),
		shared.IsValidation(err):
		return http.StatusBadRequest, "invalid_request"
	case shared.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case shared.IsDataInconsistency(err):
		return http.StatusBadGateway, "registry_inconsistent"
	case shared.IsExternalService(err):
		return http.StatusServiceUnavailable, "registry_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// errorBody builds the error response envelope.
func errorBody(code, message string) gin.H {
	return gin.H{"error": gin.H{"code": code, "message": message}}
}

// queryFlag reads a boolean query parameter ("true" or "1").
func queryFlag(c *gin.Context, key string) bool {
	v := c.Query(key)
	return v == "true" || v == "1"
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH ENDPOINT
// ══════════════════════════════════════════════════════════════════════════════

const healthCheckTimeout = 3 * time.Second

// handleHealth runs every registered dependency probe. Any failing probe
// turns the whole response into 503 so orchestrators stop routing traffic.
func (s *Server) handleHealth(c *gin.Context) {
	healthy := true
	checks := make(map[string]string, len(s.deps.Checks))

	for name, check := range s.deps.Checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			healthy = false
			checks[name] = err.Error()
		} else {
			checks[name] = "ok"
		}
	}

	status := http.StatusOK
	estado := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		estado = "degraded"
	}

	c.JSON(status, gin.H{
		"status":    estado,
		"version":   s.deps.Version,
		"checks":    checks,
		"timestamp": time.Now().UTC(),
	})
}
