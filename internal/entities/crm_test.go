package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to LeadStatus
		want     bool
	}{
		{LeadNew, LeadContacted, true},
		{LeadNew, LeadWon, false},
		{LeadNew, LeadLost, false},
		{LeadNew, LeadUnsubscribed, true},
		{LeadContacted, LeadContacted, true},
		{LeadReplied, LeadMeeting, true},
		{LeadMeeting, LeadReplied, false},
		{LeadLost, LeadContacted, true},
		{LeadWon, LeadContacted, false},
		{LeadWon, LeadUnsubscribed, true},
		{LeadUnsubscribed, LeadUnsubscribed, false},
		{LeadUnsubscribed, LeadNew, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			require.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestLeadStatus(t *testing.T) {
	require.True(t, LeadMeeting.Valid())
	require.False(t, LeadStatus("cold").Valid())
	require.True(t, LeadUnsubscribed.Terminal())
	require.True(t, LeadWon.Terminal())
	require.False(t, LeadContacted.Terminal())
	require.True(t, KindB2B.Valid())
	require.False(t, LeadKind("b2c").Valid())
}

func TestEmailTemplateRender(t *testing.T) {
	tpl := EmailTemplate{
		Subject: "Hi {{name}}",
		Body:    "Toad for {{company}}.\nUnsubscribe: {{unsubscribe_url}}",
	}
	lead := Lead{Name: "Sam", CompanyName: "Chess Society"}

	subject, body := tpl.Render(lead, "https://toad.test/unsubscribe/tok")
	require.Equal(t, "Hi Sam", subject)
	require.Equal(t, "Toad for Chess Society.\nUnsubscribe: https://toad.test/unsubscribe/tok", body)
}
