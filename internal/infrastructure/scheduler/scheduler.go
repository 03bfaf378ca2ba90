// Package scheduler ejecuta tareas periódicas en segundo plano (copias de seguridad programadas).
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/vanbuilder-api/pkg/logger"
)

// Job tarea periódica; recibe la hora del tic y devuelve cuántos elementos procesó.
type Job func(ctx context.Context, now time.Time) int

// Ticker lanza un Job cada interval hasta que el contexto se cancela.
type Ticker struct {
	name     string
	interval time.Duration
	job      Job
	log      *logger.Logger
	now      func() time.Time

	wg sync.WaitGroup
}

// NewTicker construye el planificador. Un interval <= 0 usa una hora.
func NewTicker(name string, interval time.Duration, job Job, log *logger.Logger) *Ticker {
	if interval <= 0 {
		interval = time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ticker{name: name, interval: interval, job: job, log: log.Named(name), now: time.Now}
}

// Start arranca el bucle en una goroutine. Hace un primer barrido inmediato.
func (t *Ticker) Start(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.run(ctx)

		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				t.log.Info().Msg("planificador detenido")
				return
			case <-tk.C:
				t.run(ctx)
			}
		}
	}()
	t.log.Info().Dur("interval", t.interval).Msg("planificador iniciado")
}

// Wait bloquea hasta que el bucle termina tras cancelar el contexto.
func (t *Ticker) Wait() { t.wg.Wait() }

func (t *Ticker) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error().Interface("panic", r).Msg("tarea periódica abortada")
		}
	}()
	start := t.now()
	n := t.job(ctx, start)
	if n > 0 {
		t.log.Info().Int("processed", n).Dur("elapsed", time.Since(start)).Msg("barrido completado")
	}
}
