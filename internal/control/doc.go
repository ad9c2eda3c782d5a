// Package control holds the interactive parameter panel shared by the
// terminal and windowed front ends.
//
// A [Panel] owns a working copy of [engine.Params] and a playback state
// (paused, ticks per frame). Front ends map keys onto panel actions and
// read the result back once per frame:
//
//	panel := control.NewPanel(exp.Runner().Params())
//	panel.Next()      // select the next knob
//	panel.Adjust(+1)  // nudge it by one step
//	panel.Apply(exp.Runner())
//
// Knob steps match a drag-value UI: 0.005 for attraction and friction,
// 0.1 for radii.
package control
