package pbtk

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/san-kum/fbio/internal/absorption"
	"github.com/san-kum/fbio/internal/integrators"
	"github.com/san-kum/fbio/internal/ivive"
	"github.com/san-kum/fbio/internal/physiology"
)

// Reference values from a fine-step run of the published model.
const (
	dehpFbio24h       = 0.11173712350291277
	dehpHepFbio24h    = 0.0322660570817198
	zeroClearanceFbio = 0.9249419842620665
)

func evaluate(t *testing.T, chem Chemical, opts Options) *Outcome {
	t.Helper()
	out, err := Evaluate(context.Background(), chem, physiology.Default(), opts)
	require.NoError(t, err)
	return out
}

func TestEvaluate_DEHPReference(t *testing.T) {
	out := evaluate(t, dehp(), DefaultOptions())

	assert.True(t, scalar.EqualWithinRel(dehpFbio24h, out.Fbio, 1e-6),
		"Fbio = %.12f, want %.12f", out.Fbio, dehpFbio24h)
	assert.InDelta(t, out.Factors.Fbio(), out.Fbio, 0)
	assert.Len(t, out.Result.Final, NumStates)
}

func TestFbio_EntryPoint(t *testing.T) {
	got, err := Fbio(context.Background(), "DEHP", 10.4, 15.6, 15.6, 30.1, 219.6, 7.43, 390.6, "microsome", 2.1e-6, 24)
	require.NoError(t, err)
	assert.True(t, scalar.EqualWithinRel(dehpFbio24h, got, 1e-6), "got %.12f", got)

	got, err = Fbio(context.Background(), "DEHP", 10.4, 15.6, 15.6, 30.1, 219.6, 7.43, 390.6, "hep", 2.1e-6, 24)
	require.NoError(t, err)
	assert.True(t, scalar.EqualWithinRel(dehpHepFbio24h, got, 1e-6), "got %.12f", got)
}

func TestFbio_InputErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Fbio(ctx, "DEHP", 10.4, 15.6, 15.6, 30.1, 219.6, 7.43, 390.6, "s9", 2.1e-6, 24)
	assert.ErrorIs(t, err, ivive.ErrUnknownAssay)

	_, err = Fbio(ctx, "DEHP", 10.4, 15.6, 15.6, 30.1, 219.6, 7.43, 390.6, "microsome", 0, 24)
	assert.ErrorIs(t, err, absorption.ErrNonPositivePermeability)

	_, err = Fbio(ctx, "DEHP", 10.4, 15.6, 15.6, 30.1, 219.6, 7.43, 390.6, "microsome", 2.1e-6, 0)
	assert.Error(t, err)
}

func TestFbio_NonFiniteHorizon(t *testing.T) {
	ctx := context.Background()
	for _, horizon := range []float64{math.NaN(), math.Inf(1)} {
		_, err := Fbio(ctx, "DEHP", 10.4, 15.6, 15.6, 30.1, 219.6, 7.43, 390.6, "microsome", 2.1e-6, horizon)
		require.Error(t, err, "horizon %v", horizon)
		assert.NotErrorIs(t, err, ErrUndefinedBioavailability, "horizon %v", horizon)
	}
}

func TestEvaluate_ZeroClearanceIsAbsorbedFraction(t *testing.T) {
	chem := Chemical{Name: "inert", LogKow: 1, Assay: ivive.Microsome, Papp: 1e-4}
	out := evaluate(t, chem, DefaultOptions())

	assert.True(t, scalar.EqualWithinRel(zeroClearanceFbio, out.Fbio, 1e-6), "got %.12f", out.Fbio)
	// Without metabolism only fecal loss remains.
	assert.InDelta(t, out.Model.AbsorbedFraction(), out.Fbio, 5e-3)
}

func TestEvaluate_ZeroClearanceApproachesOne(t *testing.T) {
	chem := Chemical{Name: "inert", LogKow: 1, Assay: ivive.Microsome, Papp: 0.5}
	out := evaluate(t, chem, DefaultOptions())

	assert.InDelta(t, 1.0, out.Fbio, 0.02)
	assert.LessOrEqual(t, out.Fbio, 1.0)
}

func TestEvaluate_HorizonInvariantAtSteadyState(t *testing.T) {
	long := DefaultOptions()
	long.Horizon = 240
	longer := DefaultOptions()
	longer.Horizon = 480

	a := evaluate(t, dehp(), long)
	b := evaluate(t, dehp(), longer)

	assert.True(t, scalar.EqualWithinRel(a.Fbio, b.Fbio, 1e-5), "240h=%.12f 480h=%.12f", a.Fbio, b.Fbio)
}

func TestEvaluate_Trajectory(t *testing.T) {
	opts := DefaultOptions()
	opts.GridPoints = 500
	opts.KeepTrajectory = true

	out := evaluate(t, dehp(), opts)
	res := out.Result
	require.Len(t, res.States, 500)
	require.Len(t, res.Times, 500)
	assert.Equal(t, 24.0, res.Times[499])

	for i := 1; i < len(res.States); i++ {
		for j := CumLumenToWall; j < NumStates; j++ {
			assert.GreaterOrEqual(t, res.States[i][j], res.States[i-1][j]-1e-12, "%s at step %d", StateNames[j], i)
		}
	}
}

func TestEvaluate_FixedStepAgrees(t *testing.T) {
	opts := DefaultOptions()
	opts.Integrator = integrators.NewRK4()

	out := evaluate(t, dehp(), opts)
	assert.True(t, scalar.EqualWithinRel(dehpFbio24h, out.Fbio, 1e-6), "got %.12f", out.Fbio)
}

func TestEvaluate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Evaluate(ctx, dehp(), physiology.Default(), DefaultOptions())
	assert.True(t, errors.Is(err, context.Canceled))
}
