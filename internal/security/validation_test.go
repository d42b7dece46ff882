package security

import "testing"

func TestValidateHTTPURL(t *testing.T) {
	valid := []string{
		"https://example.com/wallpaper.png",
		"http://127.0.0.1:8080/a.jpg",
		"HTTPS://EXAMPLE.COM/x",
	}
	for _, u := range valid {
		if err := ValidateHTTPURL(u); err != nil {
			t.Errorf("ValidateHTTPURL(%q) error = %v", u, err)
		}
	}

	invalid := []string{"", "ftp://example.com/a.png", "https:///nohost", "://bad", "file:///etc/passwd"}
	for _, u := range invalid {
		if err := ValidateHTTPURL(u); err == nil {
			t.Errorf("ValidateHTTPURL(%q) expected error", u)
		}
	}
}

func TestIsLocalOrPrivateHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"images.localhost", true},
		{"127.0.0.1", true},
		{"[::1]", true},
		{"10.1.2.3", true},
		{"172.20.0.1", true},
		{"192.168.1.10", true},
		{"169.254.1.1", true},
		{"fd00::1", true},
		{"0.0.0.0", true},
		{"8.8.8.8", false},
		{"172.32.0.1", false},
		{"example.com", false},
	}

	for _, tt := range tests {
		if got := IsLocalOrPrivateHost(tt.host); got != tt.want {
			t.Errorf("IsLocalOrPrivateHost(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}
