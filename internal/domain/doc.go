// Package domain models the historical climate series and the prediction
// contract shared by every simulation model.
//
// # Data Source
//
// The historical series covers annual mean surface temperature for the
// Philippines, 1901-2022, derived from the World Bank Climate Change
// Knowledge Portal (CRU TS gridded observations). Each record carries the
// raw annual mean plus a centered five-year moving average ("five-year
// smooth") computed upstream. The smooth is the primary regression target:
// year-to-year ENSO-driven swings of ±0.2°C would otherwise dominate the
// fitted trend.
//
// # Prediction Window
//
// Target years are constrained to [2024, 2100]. Years below the window are
// rejected before any model runs; years beyond it exceed the calibration of
// the dampening and confidence-decay heuristics, which were tuned against
// this dataset's scale (~24-28°C).
//
// # Models
//
// Three strategies share the contract
// Predict(series, targetYear) -> PredictionOutcome:
//
//	polynomial      degree-2 fit over the most recent 30 records, with
//	                far-future dampening and distance-based confidence decay
//	linear          degree-1 fit over the whole series, no dampening,
//	                same confidence decay
//	moving-average  mean of the last 5 smooth values extrapolated by their
//	                average yearly change; confidence is purely local fit
//	                quality, no decay
//
// The asymmetry is deliberate: the moving-average model is a locally fitted
// trend, so distance-based decay of its confidence would double-count the
// extrapolation risk already visible in its short window.
package domain
