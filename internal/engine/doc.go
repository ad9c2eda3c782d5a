// Package engine implements the particle life simulation core.
//
// Particles carry a position, a velocity and a small integer type. A
// [TypeModel] holds the per-pair interaction coefficients, a [Grid]
// buckets particles for bounded-radius neighbor queries, and
// [Engine.Step] advances a whole particle array by one tick:
//
//   - Phase A accumulates forces into fresh velocities, reading only the
//     previous frame and the immutable grid.
//   - Phase B integrates positions and applies the [World] boundary policy.
//
// # Example
//
//	world, _ := engine.NewWorld(128, 128, true)
//	eng := engine.New(world)
//	model, _ := engine.NewTypeModel(8, engine.DefaultParams(), rand.NewSource(42))
//	ps := eng.CreateParticles(model, 1024, rand.New(rand.NewSource(42)))
//	for i := 0; i < 100; i++ {
//		ps, _ = eng.Step(model, engine.DefaultParams(), ps)
//	}
//
// # Thread Safety
//
// Step is safe to call from one goroutine at a time and parallelizes
// internally. A TypeModel must not be randomized while a Step using it
// is in flight.
package engine
