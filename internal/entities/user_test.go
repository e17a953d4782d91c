package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllows(t *testing.T) {
	require.True(t, Allows(3, 2))
	require.False(t, Allows(3, 3))
	require.False(t, Allows(0, 0))
	require.True(t, Allows(Unlimited, 1000))
}

func TestTierLimits(t *testing.T) {
	require.Equal(t, Limits{MaxProjects: 3}, TierFree.Limits())
	require.Equal(t, TierPersonal.Limits(), TierPersonalTrial.Limits())
	require.Equal(t, TierPro.Limits(), TierBeta.Limits())
	require.True(t, TierProTrial.Limits().TeamSharing)
	require.Equal(t, TierFree.Limits(), Tier("gold").Limits())
	require.False(t, Tier("gold").Valid())
	require.True(t, TierProTrial.IsTrial())
	require.False(t, TierPro.IsTrial())
}

func TestIsDowngrade(t *testing.T) {
	cases := []struct {
		from, to Tier
		want     bool
	}{
		{TierPro, TierPersonal, true},
		{TierPersonal, TierFree, true},
		{TierProTrial, TierFree, true},
		{TierFree, TierPersonal, false},
		{TierPersonal, TierPro, false},
		{TierPro, TierBeta, false},
		{TierPersonalTrial, TierPersonal, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			require.Equal(t, tc.want, IsDowngrade(tc.from, tc.to))
		})
	}
}

func TestRanks(t *testing.T) {
	require.Equal(t, 0, Ranks(TierFree))
	require.Equal(t, 0, Ranks(Tier("unknown")))
	require.Equal(t, 1, Ranks(TierPersonal))
	require.Equal(t, 1, Ranks(TierPersonalTrial))
	require.Equal(t, 2, Ranks(TierPro))
	require.Equal(t, 2, Ranks(TierBeta))
	require.Equal(t, 2, Ranks(TierProTrial))
}

func TestTrialTier(t *testing.T) {
	tier, ok := TrialTier(TierPersonal)
	require.True(t, ok)
	require.Equal(t, TierPersonalTrial, tier)

	tier, ok = TrialTier(TierPro)
	require.True(t, ok)
	require.Equal(t, TierProTrial, tier)

	_, ok = TrialTier(TierFree)
	require.False(t, ok)
	_, ok = TrialTier(TierProTrial)
	require.False(t, ok)
}

func TestDowngradeReportAdd(t *testing.T) {
	r := DowngradeReport{UsersDowngraded: 1, ProjectsUnshared: 2}
	r.Add(DowngradeReport{UsersDowngraded: 1, ProjectsArchived: 3, MembersRemoved: 1})
	require.Equal(t, DowngradeReport{
		UsersDowngraded:  2,
		ProjectsUnshared: 2,
		ProjectsArchived: 3,
		MembersRemoved:   1,
	}, r)
}

func TestPlans(t *testing.T) {
	require.Equal(t, TierPersonal, PlanPersonal.Tier())
	require.Equal(t, TierPro, PlanPro.Tier())
	require.Equal(t, TierPro, PlanTeam.Tier())
	require.Equal(t, TierFree, Plan("enterprise").Tier())

	prices := PriceMap{"price_team": PlanTeam}
	plan, ok := prices.Plan("price_team")
	require.True(t, ok)
	require.Equal(t, PlanTeam, plan)
	_, ok = prices.Plan("price_missing")
	require.False(t, ok)
}
