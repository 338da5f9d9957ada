package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	applogger "TrendScan/pkg/logger"
)

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestRunContextClosesInReverseOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var order []string
	closer := func(name string) Closer {
		return Closer{Name: name, Close: func() error {
			order = append(order, name)
			return nil
		}}
	}

	app := New(runnerFunc(func(ctx context.Context) error {
		cancel()
		<-ctx.Done()
		return nil
	}), nil, applogger.Nop(), closer("cache"), closer("kafka"), closer("clickhouse"))

	assert.NoError(t, app.RunContext(ctx))
	assert.Equal(t, []string{"clickhouse", "kafka", "cache"}, order)
}

func TestRunContextReturnsRunnerError(t *testing.T) {
	boom := errors.New("boom")
	closed := false
	app := New(runnerFunc(func(context.Context) error { return boom }), nil, applogger.Nop(),
		Closer{Name: "x", Close: func() error { closed = true; return errors.New("already closed") }})

	assert.ErrorIs(t, app.RunContext(context.Background()), boom)
	assert.True(t, closed)
}
