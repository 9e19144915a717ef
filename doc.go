// Package buddha renders Buddhabrot density images.
//
// # Overview
//
// A Buddhabrot is a histogram of every point visited by escaping orbits of
// the Mandelbrot recurrence z = z² + c. For every sample point c on a
// regular pixel grid (optionally supersampled), the engine iterates the
// recurrence and, when the orbit escapes after at least MinIterations and
// before MaxIterations steps, increments a counter at every pixel the orbit
// passed through.
//
// # Quick Start
//
//	p := buddha.DefaultParams()
//	p.Name = "buddha"
//	p.Width = 1024
//
//	e, err := buddha.New(p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := e.Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pm := buddha.Render(res, buddha.Sqrt)
//	_ = pm.SavePNG("buddha.png")
//
// # Architecture
//
// The engine is organized into:
//   - Mapper: pixel index, pixel coordinate and complex plane conversions
//   - InMainBody: analytic cardioid and period-2 bulb rejection
//   - Evaluator: escape-time iteration producing orbit indices
//   - DensityBuffer: shared histogram, flushed in batches under a mutex
//   - internal/parallel: range queue and worker group
//   - internal/logsink: queued log records and periodic progress output
//
// # Logging
//
// By default the package produces no log output. Call [SetLogger] or pass
// [WithLogger] to [New] to observe run lifecycle and progress.
package buddha
