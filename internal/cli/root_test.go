package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/franckalain/nutriscan/internal/estimate"
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/franckalain/nutriscan/internal/nutrition"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEstimator struct {
	kind  estimate.Kind
	input string
	calls int
	rec   *models.NutritionRecord
	err   error
}

func (f *fakeEstimator) Estimate(ctx context.Context, kind estimate.Kind, input string) (*models.NutritionRecord, error) {
	f.calls++
	f.kind = kind
	f.input = input
	return f.rec, f.err
}

func execute(t *testing.T, est estimator, args ...string) (string, error) {
	t.Helper()
	jsonOutput, verbose, timeout, eatenGrams, rescaleGrams = false, false, 0, 0, 0
	rescaleRecord = models.NutritionRecord{}
	for _, c := range []*cobra.Command{dishCmd, textCmd, labelCmd, rescaleCmd} {
		c.Flags().Lookup("grams").Changed = false
	}

	prev := newEstimator
	newEstimator = func(ctx context.Context) (estimator, func(), error) {
		if est == nil {
			return nil, nil, errors.New("no pipeline in this test")
		}
		return est, func() {}, nil
	}
	t.Cleanup(func() { newEstimator = prev })

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writePhoto(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plate.png")
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	require.NoError(t, os.WriteFile(path, png, 0o600))
	return path
}

func TestRootHelp(t *testing.T) {
	out, err := execute(t, nil, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "nutri")
	for _, sub := range []string{"dish", "text", "label", "rescale"} {
		assert.Contains(t, out, sub)
	}
}

func TestTextCommand(t *testing.T) {
	est := &fakeEstimator{rec: &models.NutritionRecord{Name: "Ají de gallina", Energy: 180, Protein: 11.5, Fats: 12, Water: 60}}

	out, err := execute(t, est, "text", "Ají", "de", "gallina")
	require.NoError(t, err)

	assert.Equal(t, estimate.KindText, est.kind)
	assert.Equal(t, "Ají de gallina", est.input)
	assert.Equal(t, "Food: Ají de gallina\nPortion: 100g\nEnergy: 180.0 kcal\nProtein: 11.5g\nFats: 12.0g\nWater: 60.0g\n", out)
}

func TestTextCommandJSONWithGrams(t *testing.T) {
	est := &fakeEstimator{rec: &models.NutritionRecord{Name: "Lomo saltado", Energy: 150, Protein: 12, Fats: 7.5, Water: 62}}

	out, err := execute(t, est, "--json", "text", "Lomo saltado", "--grams", "250")
	require.NoError(t, err)

	var got struct {
		Record   models.NutritionRecord   `json:"record"`
		Consumed models.ConsumedNutrition `json:"consumed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Lomo saltado", got.Record.Name)
	assert.Equal(t, models.ConsumedNutrition{Grams: 250, Energy: 375, Protein: 30, Fats: 18.75, Water: 155}, got.Consumed)
}

func TestEstimateRejectsInvalidGramsBeforeCallingEngine(t *testing.T) {
	for _, grams := range []string{"--grams=-5", "--grams=0", "--grams=NaN"} {
		est := &fakeEstimator{rec: &models.NutritionRecord{Name: "Ceviche", Energy: 120}}

		_, err := execute(t, est, "text", "Ceviche", grams)
		assert.ErrorIs(t, err, nutrition.ErrInvalidQuantity, grams)
		assert.Equal(t, 0, est.calls, grams)
	}
}

func TestDishAndLabelCommandsSendDataURI(t *testing.T) {
	photo := writePhoto(t)

	for _, tc := range []struct {
		cmd  string
		kind estimate.Kind
	}{
		{"dish", estimate.KindDish},
		{"label", estimate.KindLabel},
	} {
		est := &fakeEstimator{rec: &models.NutritionRecord{Name: "Inca Kola", Portion: "250ml", Energy: 100}}

		out, err := execute(t, est, tc.cmd, photo)
		require.NoError(t, err)

		assert.Equal(t, tc.kind, est.kind)
		assert.True(t, strings.HasPrefix(est.input, "data:image/png;base64,"), est.input)
		mimeType, _, err := estimate.ParseDataURI(est.input)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mimeType)
		assert.Contains(t, out, "Portion: 250ml\n")
	}
}

func TestLabelCommandRejectsNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text"), 0o600))

	est := &fakeEstimator{}
	_, err := execute(t, est, "label", path)
	assert.ErrorContains(t, err, "is not an image")
	assert.Equal(t, 0, est.calls)
}

func TestEstimateErrorsAreReturned(t *testing.T) {
	est := &fakeEstimator{err: estimate.ErrExtraction}
	_, err := execute(t, est, "label", writePhoto(t))
	assert.ErrorIs(t, err, estimate.ErrExtraction)
}

func TestRescaleCommand(t *testing.T) {
	out, err := execute(t, nil, "rescale", "--portion", "30g", "--energy", "132", "--protein", "3", "--fats", "4", "--grams", "45")
	require.NoError(t, err)
	assert.Equal(t, "Eaten: 45g\nEnergy: 198.0 kcal\nProtein: 4.5g\nFats: 6.0g\nWater: 0.0g\n", out)
}

func TestRescaleCommandRejectsInvalidGrams(t *testing.T) {
	_, err := execute(t, nil, "rescale", "--energy", "100", "--grams", "-5")
	assert.ErrorIs(t, err, nutrition.ErrInvalidQuantity)
}
