package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransiente = errors.New("timeout")

func TestDo_RetentaErroTransiente(t *testing.T) {
	tentativas := 0
	r := New(WithMaxAttempts(3), WithInitialDelay(time.Millisecond), WithJitter(0))

	err := r.Do(context.Background(), func(_ context.Context) error {
		tentativas++
		if tentativas < 3 {
			return Retryable(errTransiente)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, tentativas)
}

func TestDo_ErroPermanenteParaImediatamente(t *testing.T) {
	tentativas := 0
	r := New(WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	err := r.Do(context.Background(), func(_ context.Context) error {
		tentativas++
		return Permanent(errTransiente)
	})

	assert.ErrorIs(t, err, errTransiente)
	assert.Equal(t, 1, tentativas)
}

func TestDo_ErroNaoClassificadoNaoRetenta(t *testing.T) {
	tentativas := 0
	r := New(WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	err := r.Do(context.Background(), func(_ context.Context) error {
		tentativas++
		return errTransiente
	})

	assert.ErrorIs(t, err, errTransiente)
	assert.Equal(t, 1, tentativas)
}

func TestDo_EsgotaTentativas(t *testing.T) {
	tentativas := 0
	r := New(WithMaxAttempts(3), WithInitialDelay(time.Millisecond), WithJitter(0))

	err := r.Do(context.Background(), func(_ context.Context) error {
		tentativas++
		return Retryable(errTransiente)
	})

	assert.ErrorIs(t, err, errTransiente)
	assert.Equal(t, 3, tentativas)

	// O invólucro de classificação nunca vaza para o chamador.
	assert.False(t, IsRetryable(err))
}

func TestDo_ContextoCanceladoInterrompe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tentativas := 0
	r := New(WithMaxAttempts(10), WithInitialDelay(50*time.Millisecond))

	err := r.Do(ctx, func(_ context.Context) error {
		tentativas++
		cancel()
		return Retryable(errTransiente)
	})

	assert.ErrorIs(t, err, errTransiente)
	assert.Equal(t, 1, tentativas)
}

func TestDo_NotificaCadaNovaTentativa(t *testing.T) {
	var avisos []int
	r := New(
		WithMaxAttempts(3),
		WithInitialDelay(time.Millisecond),
		WithJitter(0),
		WithOnRetry(func(attempt int, _ error, _ time.Duration) {
			avisos = append(avisos, attempt)
		}),
	)

	_ = r.Do(context.Background(), func(_ context.Context) error {
		return Retryable(errTransiente)
	})

	assert.Equal(t, []int{1, 2}, avisos)
}
