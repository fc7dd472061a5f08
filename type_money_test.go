package casefolio

import "testing"

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{M(25, "USD"), "$25.00"},
		{M(-17, "USD"), "-$17.00"},
		{M(1234.5, "USD"), "$1,234.50"},
		{M(0.125, "USD"), "$0.13"},
		{M(3.5, ""), "3.50"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.m.value, got, tc.want)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
		tone Tone
	}{
		{M(8, "USD"), "+$8.00", Gain},
		{M(-8, "USD"), "-$8.00", Loss},
		{M(0, "USD"), "-", Neutral},
	}
	for _, tc := range testCases {
		if got := tc.m.SignedString(); got != tc.want {
			t.Errorf("SignedString() = %q, want %q", got, tc.want)
		}
		if got := tc.m.Tone(); got != tc.tone {
			t.Errorf("Tone() = %q, want %q", got, tc.tone)
		}
	}
}
