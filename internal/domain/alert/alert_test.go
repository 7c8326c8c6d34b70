package alert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Snorps/better-medical-alerts/internal/domain/health"
)

// TestCategory_Names verifies names parse back and keys are distinct.
func TestCategory_Names(t *testing.T) {
	t.Parallel()

	labels := make(map[string]struct{})

	for _, c := range Categories {
		parsed, ok := ParseCategory(c.String())
		require.True(t, ok)
		require.Equal(t, c, parsed)
		require.Equal(t, PriorityCritical, c.Priority())

		labels[c.LabelKey()] = struct{}{}
	}

	require.Len(t, labels, len(Categories))

	_, ok := ParseCategory("plague")
	require.False(t, ok)
}

// TestCategory_DescriptionKey checks that only the generic category varies with the off-core flag.
func TestCategory_DescriptionKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, Bleeding.DescriptionKey(false), Bleeding.DescriptionKey(true))
	require.Equal(t, Infection.DescriptionKey(false), Infection.DescriptionKey(true))
	require.NotEqual(t, LifeThreatening.DescriptionKey(false), LifeThreatening.DescriptionKey(true))
}

// TestReport_Lookups covers Result, Firing and CategoryOf.
func TestReport_Lookups(t *testing.T) {
	t.Parallel()

	a := &health.Actor{ID: "a", Name: "Ada"}
	report := &Report{Results: []*Result{
		NewResult(Bleeding, []*health.Actor{a}),
		NewResult(Infection, nil),
		NewResult(LifeThreatening, nil),
	}}

	require.Equal(t, []string{"a"}, report.Result(Bleeding).MemberIDs())
	require.Equal(t, []*health.Actor{a}, report.Result(Bleeding).Actors())
	require.Len(t, report.Firing(), 1)

	c, ok := report.CategoryOf("a")
	require.True(t, ok)
	require.Equal(t, Bleeding, c)

	_, ok = report.CategoryOf("b")
	require.False(t, ok)
}
