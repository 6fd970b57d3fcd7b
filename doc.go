// Package autostretch renders raw linear sensor frames into 8-bit display rasters.
//
// Tone parameters are derived from robust per-channel statistics (median and median
// absolute deviation over a strided sample) and applied with a midtones transfer
// function, so that faint astronomical signal becomes visible without manual adjustment.
package autostretch
