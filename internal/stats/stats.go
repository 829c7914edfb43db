// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/typee/internal/model"
)

const sparkChars = " .:-=+*#%@"

const charsPerWord = 5.0

// Compute derives the final stats of a test from the flattened target, the
// raw input, the time limit and the seconds left on the countdown.
func Compute(target, input []rune, timeLimit, remaining int) model.Stats {
	matched := len(input)
	if len(target) < matched {
		matched = len(target)
	}
	correct := 0
	for i := 0; i < matched; i++ {
		if input[i] == target[i] {
			correct++
		}
	}

	minutes := float64(timeLimit-remaining) / 60.0
	if minutes == 0 {
		// Zero elapsed time falls back to the full limit.
		minutes = float64(timeLimit) / 60.0
	}
	wpm := math.Round(float64(correct) / charsPerWord / minutes)
	if math.IsNaN(wpm) || math.IsInf(wpm, 0) {
		wpm = 0
	}

	accuracy := 100
	if len(input) > 0 {
		accuracy = int(math.Round(float64(correct) / float64(len(input)) * 100))
	}
	return model.Stats{WPM: int(wpm), Accuracy: accuracy}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Summary aggregates minted scores.
type Summary struct {
	Count       int
	AvgWPM      float64
	BestWPM     int
	AvgAccuracy float64
}

// Summarize aggregates records into a Summary.
func Summarize(records []model.ScoreRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	var totalWPM, totalAcc float64
	best := 0
	for _, r := range records {
		totalWPM += float64(r.WPM)
		totalAcc += float64(r.Accuracy)
		if r.WPM > best {
			best = r.WPM
		}
	}
	count := float64(len(records))
	return Summary{
		Count:       len(records),
		AvgWPM:      totalWPM / count,
		BestWPM:     best,
		AvgAccuracy: totalAcc / count,
	}
}

// RenderSummary prints a summary of minted scores.
func RenderSummary(w io.Writer, records []model.ScoreRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No scores minted yet.")
		return err
	}
	s := Summarize(records)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scores: %d\n", s.Count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", s.AvgWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %d\n", s.BestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", s.AvgAccuracy); err != nil {
		return err
	}
	return nil
}

// RenderTrend prints a WPM sparkline smoothed over window scores.
func RenderTrend(w io.Writer, records []model.ScoreRecord, window, width int) error {
	if len(records) < 2 {
		return nil
	}
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = float64(r.WPM)
	}
	values = MovingAverage(values, window)
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	_, err := fmt.Fprintf(w, "WPM trend: %s\n", Sparkline(values))
	return err
}
