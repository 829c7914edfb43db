package stats

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/verte-zerg/typee/internal/model"
)

func TestComputeHalfMinuteScenario(t *testing.T) {
	target := []rune("the be of")
	got := Compute(target, []rune("the be"), 60, 30)
	// 6 correct chars / 5 / 0.5 minutes = 2.4.
	if got.WPM != 2 {
		t.Fatalf("expected 2 wpm, got %d", got.WPM)
	}
	if got.Accuracy != 100 {
		t.Fatalf("expected 100%% accuracy, got %d", got.Accuracy)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	got := Compute([]rune("the be of"), nil, 60, 0)
	if got.WPM != 0 || got.Accuracy != 100 {
		t.Fatalf("expected 0 wpm and 100%% accuracy, got %+v", got)
	}
}

func TestComputeSingleMismatch(t *testing.T) {
	target := []rune("abcdefghijklmnop")
	input := []rune("xbcdefghij")
	got := Compute(target, input, 60, 0)
	if got.Accuracy != 90 {
		t.Fatalf("expected 90%% accuracy, got %d", got.Accuracy)
	}
	// 9 correct chars over one minute.
	if got.WPM != 2 {
		t.Fatalf("expected 2 wpm, got %d", got.WPM)
	}
}

func TestComputeZeroElapsedFallsBackToLimit(t *testing.T) {
	target := []rune("aaaaaaaaaa")
	got := Compute(target, []rune("aaaaaaaaaa"), 30, 30)
	// 10 correct / 5 / 0.5 minutes.
	if got.WPM != 4 {
		t.Fatalf("expected 4 wpm, got %d", got.WPM)
	}
}

func TestComputeInputLongerThanTarget(t *testing.T) {
	got := Compute([]rune("ab"), []rune("abcd"), 60, 0)
	if got.Accuracy != 50 {
		t.Fatalf("expected 50%% accuracy, got %d", got.Accuracy)
	}
}

func TestComputeAccuracyBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	alphabet := []rune("ab ")
	for i := 0; i < 500; i++ {
		target := randomRunes(rnd, alphabet, rnd.Intn(40))
		input := randomRunes(rnd, alphabet, rnd.Intn(60))
		got := Compute(target, input, 60, rnd.Intn(61))
		if got.Accuracy < 0 || got.Accuracy > 100 {
			t.Fatalf("accuracy %d out of range for %q/%q", got.Accuracy, string(target), string(input))
		}
		if got.WPM < 0 {
			t.Fatalf("negative wpm %d", got.WPM)
		}
	}
}

func randomRunes(rnd *rand.Rand, alphabet []rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = alphabet[rnd.Intn(len(alphabet))]
	}
	return out
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	records := []model.ScoreRecord{
		{ID: "0x1", WPM: 60, Accuracy: 90},
		{ID: "0x2", WPM: 80, Accuracy: 100},
	}
	if err := RenderSummary(&buf, records); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Scores: 2", "Avg WPM: 70.00", "Best WPM: 80", "Avg Accuracy: 95.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q: %s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No scores minted yet.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
