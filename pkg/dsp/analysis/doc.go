// Package analysis measures rendered audio: its spectrum through an FFT and
// its stereo image through balance and correlation.
//
// Example usage:
//
//	s := analysis.Analyze(left, 44100, analysis.Hann)
//	freq, mag := s.PeakFrequency()
//
//	balance := analysis.Balance(left, right)
package analysis
