package components

import (
	"context"
	"sync"

	"redemption-service/internal/usecase/commands"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(StartWorkers),
)

// StartWorkers runs the reaper and the audit relay for the app's lifetime.
func StartWorkers(lc fx.Lifecycle, reaper *commands.Reaper, relay *commands.AuditRelay) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				reaper.Run(ctx)
			}()
			go func() {
				defer wg.Done()
				relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
