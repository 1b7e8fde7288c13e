package domain_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/doeshing/qrgen/internal/domain"
)

func TestWiFiPayload(t *testing.T) {
	tests := []struct {
		name     string
		auth     domain.WiFiAuth
		ssid     string
		password string
		hidden   bool
		want     string
		wantErr  bool
	}{
		{
			name:     "wpa network",
			auth:     domain.WiFiWPA,
			ssid:     "home",
			password: "secret",
			want:     "WIFI:T:WPA;S:home;P:secret;H:false;;",
		},
		{
			name: "trims ssid and marks hidden",
			auth: domain.WiFiNoPass,
			ssid: "  cafe ",
			hidden: true,
			want: "WIFI:T:nopass;S:cafe;P:;H:true;;",
		},
		{
			name:     "escapes reserved characters",
			auth:     domain.WiFiWEP,
			ssid:     `a;b`,
			password: `p:w,"\`,
			want:     `WIFI:T:WEP;S:a\;b;P:p\:w\,\"\;H:false;;`,
		},
		{
			name:    "empty ssid",
			auth:    domain.WiFiWPA,
			ssid:    "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.WiFiPayload(tt.auth, tt.ssid, tt.password, tt.hidden)
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
		})
	}
}

func TestParseWiFiAuth(t *testing.T) {
	for input, want := range map[string]domain.WiFiAuth{
		"":       domain.WiFiWPA,
		"WPA2":   domain.WiFiWPA,
		"wep":    domain.WiFiWEP,
		"NoPass": domain.WiFiNoPass,
	} {
		got, err := domain.ParseWiFiAuth(input)
		gt.NoError(t, err)
		gt.Equal(t, got, want)
	}

	_, err := domain.ParseWiFiAuth("wpa-enterprise")
	gt.True(t, errors.Is(err, domain.ErrValidation))
}

func TestSocialPayload(t *testing.T) {
	tests := []struct {
		network domain.SocialNetwork
		user    string
		want    string
	}{
		{domain.SocialFacebook, "alice", "https://facebook.com/alice"},
		{domain.SocialInstagram, " alice ", "https://instagram.com/alice"},
		{domain.SocialTwitter, "alice", "https://twitter.com/alice"},
		{domain.SocialLinkedIn, "alice", "https://linkedin.com/in/alice"},
		{domain.SocialYouTube, "alice", "https://youtube.com/alice"},
		{domain.SocialTikTok, "alice", "https://tiktok.com/@alice"},
		{"TikTok", "alice", "https://tiktok.com/@alice"},
		{domain.SocialFacebook, "https://fb.me/alice", "https://fb.me/alice"},
	}

	for _, tt := range tests {
		t.Run(string(tt.network)+"/"+tt.user, func(t *testing.T) {
			got, err := domain.SocialPayload(tt.network, tt.user)
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
		})
	}
}

func TestSocialPayloadErrors(t *testing.T) {
	_, err := domain.SocialPayload(domain.SocialFacebook, "")
	gt.True(t, errors.Is(err, domain.ErrValidation))

	_, err = domain.SocialPayload("myspace", "alice")
	gt.True(t, errors.Is(err, domain.ErrValidation))
}
