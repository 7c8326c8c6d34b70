package evaluator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Snorps/better-medical-alerts/internal/domain/health"
)

// TestBleedingOut_StrictThreshold checks 19999 ticks qualifies and 20000 does not.
func TestBleedingOut_StrictThreshold(t *testing.T) {
	t.Parallel()

	e := New(WithEstimator(fixedEstimator{"under": 19999, "at": 20000}))

	require.True(t, e.bleedingOut(actor("under", bloodLoss(0.5))))
	require.False(t, e.bleedingOut(actor("at", bloodLoss(0.5))))
}

// TestBleedingOut_RequiresCountingBloodLoss ignores actors without an active blood loss stage.
func TestBleedingOut_RequiresCountingBloodLoss(t *testing.T) {
	t.Parallel()

	e := New(WithEstimator(fixedEstimator{"a": 1}))

	require.False(t, e.bleedingOut(actor("a")))

	inactive := bloodLoss(0.2)
	inactive.Stage = nil
	require.False(t, e.bleedingOut(actor("a", inactive)))

	immune := bloodLoss(0.2)
	immune.Immunity = &health.ImmunityProcess{Immunity: 1}
	require.False(t, e.bleedingOut(actor("a", immune)))
}

// TestProjectInfection_ImmunityWins uses the reference figures where immunity completes first.
func TestProjectInfection_ImmunityWins(t *testing.T) {
	t.Parallel()

	p := ProjectInfection(containedInfection(), 1000)

	require.InDelta(t, 0.00001, p.SeverityPerTick, 1e-12)
	require.InDelta(t, 8000, p.RemainingImmunityTicks, 1e-6)
	require.InDelta(t, 70000, p.RemainingSeverityTicks, 1e-6)
	require.False(t, p.Deadly)
}

// TestProjectInfection_DiseaseWins swaps the rates so severity peaks first.
func TestProjectInfection_DiseaseWins(t *testing.T) {
	t.Parallel()

	p := ProjectInfection(fatalInfection(), 1000)

	require.InDelta(t, 0.0001, p.SeverityPerTick, 1e-12)
	require.InDelta(t, 80000, p.RemainingImmunityTicks, 1e-6)
	require.InDelta(t, 7000, p.RemainingSeverityTicks, 1e-6)
	require.True(t, p.Deadly)
}

// TestProjectInfection_DegenerateRates covers zero, negative and NaN inputs.
func TestProjectInfection_DegenerateRates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		condition *health.Condition
		ticks     float64
		deadly    bool
	}{
		{"immunity never completes", infection(0.3, 0.2, 0, 0.1), 1000, true},
		{"immunity regresses", infection(0.3, 0.2, -0.001, 0.1), 1000, true},
		{"severity never worsens", infection(0.3, 0.2, 0, 0), 1000, false},
		{"severity recedes", infection(0.3, 0.2, 0.0001, -0.5), 1000, false},
		{"no day length", infection(0.3, 0.2, 0.00001, 0.1), 0, false},
		{"nan immunity rate", infection(0.3, 0.2, math.NaN(), 0.1), 1000, false},
		{"nan severity rate", infection(0.3, 0.2, 0.00001, math.NaN()), 1000, false},
		{"nan immunity level", infection(0.3, math.NaN(), 0.00001, 0.1), 1000, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := ProjectInfection(tc.condition, tc.ticks)
			require.Equal(t, tc.deadly, p.Deadly)
			require.False(t, math.IsNaN(p.SeverityPerTick) && p.Deadly)
		})
	}
}

// TestDeadlyInfection_SkipsIneligibleConditions requires an active, non-immune infection with an immunity process.
func TestDeadlyInfection_SkipsIneligibleConditions(t *testing.T) {
	t.Parallel()

	e := New(WithTicksPerDay(1000))

	noImmunity := fatalInfection()
	noImmunity.Immunity = nil
	require.False(t, e.deadlyInfection(actor("a", noImmunity)))

	noStage := fatalInfection()
	noStage.Stage = nil
	require.False(t, e.deadlyInfection(actor("a", noStage)))

	immune := fatalInfection()
	immune.Immunity.Immunity = 1
	require.False(t, e.deadlyInfection(actor("a", immune)))

	mislabelled := fatalInfection()
	mislabelled.Kind = health.KindOther
	require.False(t, e.deadlyInfection(actor("a", mislabelled)))

	// A later deadly infection still counts after a contained one.
	require.True(t, e.deadlyInfection(actor("a", containedInfection(), fatalInfection())))
}

// TestSnapshotEstimator covers the game-supplied figure and the bleed rate projection.
func TestSnapshotEstimator(t *testing.T) {
	t.Parallel()

	est := SnapshotEstimator{TicksPerDay: 60000}

	supplied := 1234
	a := actor("a", bloodLoss(0.4))
	a.TicksUntilBloodLossDeath = &supplied
	require.Equal(t, 1234, est.TicksUntilDeath(a))

	// Not bleeding.
	b := actor("b", bloodLoss(0.4))
	b.BleedRatePerDay = 0.00005
	require.Equal(t, math.MaxInt32, est.TicksUntilDeath(b))

	// 60% blood left at 1.2 per day: half a day.
	c := actor("c", bloodLoss(0.4))
	c.BleedRatePerDay = 1.2
	require.InDelta(t, 30000, est.TicksUntilDeath(c), 1)

	// No blood loss condition yet: the whole blood volume remains.
	d := actor("d")
	d.BleedRatePerDay = 2
	require.InDelta(t, 30000, est.TicksUntilDeath(d), 1)

	// Already past the limit.
	f := actor("f", bloodLoss(1.2))
	f.BleedRatePerDay = 1
	require.Equal(t, 0, est.TicksUntilDeath(f))

	// Zero day length falls back to the default.
	require.InDelta(t, 30000, SnapshotEstimator{}.TicksUntilDeath(c), 1)
}

// TestBleedingOut_DefaultEstimator wires the snapshot estimator through New.
func TestBleedingOut_DefaultEstimator(t *testing.T) {
	t.Parallel()

	e := New(WithTicksPerDay(60000))

	fast := actor("fast", bloodLoss(0.5))
	fast.BleedRatePerDay = 3 // 10000 ticks left
	require.True(t, e.bleedingOut(fast))

	slow := actor("slow", bloodLoss(0.5))
	slow.BleedRatePerDay = 0.5 // 60000 ticks left
	require.False(t, e.bleedingOut(slow))
}
