// Package analysis turns recorded metric series and particle frames into
// summaries:
//
//   - [PowerSpectrum] and [DominantPeriod]: oscillations in a metric series
//   - [Describe]: mean, spread and extremes of a series
//   - [NewPortrait]: two metrics plotted against each other
//   - [PairCorrelation]: radial distribution function of a frame
//
// A pulsing cluster shows up as a sharp spectral peak in kinetic_energy:
//
//	ticks, series, _ := store.LoadSeries(runID)
//	period, power := analysis.DominantPeriod(series["kinetic_energy"], ticks[1]-ticks[0])
package analysis
