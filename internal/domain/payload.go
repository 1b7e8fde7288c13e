package domain

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// WiFiAuth is the authentication type encoded in a Wi-Fi payload.
type WiFiAuth string

const (
	WiFiWPA    WiFiAuth = "WPA"
	WiFiWEP    WiFiAuth = "WEP"
	WiFiNoPass WiFiAuth = "nopass"
)

// ParseWiFiAuth accepts wpa, wep or nopass in any case.
func ParseWiFiAuth(s string) (WiFiAuth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wpa", "wpa2", "wpa3":
		return WiFiWPA, nil
	case "wep":
		return WiFiWEP, nil
	case "nopass", "none", "open":
		return WiFiNoPass, nil
	}
	return "", goerr.Wrap(ErrValidation, "unknown wifi authentication type", goerr.V("auth", s))
}

var wifiEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)

// WiFiPayload builds the WIFI: payload understood by phone cameras.
func WiFiPayload(auth WiFiAuth, ssid, password string, hidden bool) (string, error) {
	ssid = strings.TrimSpace(ssid)
	if ssid == "" {
		return "", goerr.Wrap(ErrValidation, "wifi SSID is required")
	}
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:%t;;",
		auth, wifiEscaper.Replace(ssid), wifiEscaper.Replace(password), hidden), nil
}

// SocialNetwork identifies a supported profile site.
type SocialNetwork string

const (
	SocialFacebook  SocialNetwork = "facebook"
	SocialInstagram SocialNetwork = "instagram"
	SocialTwitter   SocialNetwork = "twitter"
	SocialLinkedIn  SocialNetwork = "linkedin"
	SocialYouTube   SocialNetwork = "youtube"
	SocialTikTok    SocialNetwork = "tiktok"
)

var socialProfilePrefixes = map[SocialNetwork]string{
	SocialFacebook:  "https://facebook.com/",
	SocialInstagram: "https://instagram.com/",
	SocialTwitter:   "https://twitter.com/",
	SocialLinkedIn:  "https://linkedin.com/in/",
	SocialYouTube:   "https://youtube.com/",
	SocialTikTok:    "https://tiktok.com/@",
}

// SocialNetworks lists the supported networks in display order.
func SocialNetworks() []SocialNetwork {
	return []SocialNetwork{SocialFacebook, SocialInstagram, SocialTwitter, SocialLinkedIn, SocialYouTube, SocialTikTok}
}

// SocialPayload expands a user name into a profile URL. Input that is
// already a link is returned unchanged.
func SocialPayload(network SocialNetwork, user string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", goerr.Wrap(ErrValidation, "user name or profile link is required")
	}
	prefix, ok := socialProfilePrefixes[SocialNetwork(strings.ToLower(string(network)))]
	if !ok {
		return "", goerr.Wrap(ErrValidation, "unsupported social network", goerr.V("network", network))
	}
	if strings.HasPrefix(user, "http") {
		return user, nil
	}
	return prefix + user, nil
}
