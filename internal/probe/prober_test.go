package probe

import (
	"strings"
	"testing"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"rational NTSC", "30000/1001", 30000.0 / 1001.0, false},
		{"rational integer", "25/1", 25, false},
		{"plain decimal", "29.97", 29.97, false},
		{"plain integer", "30", 30, false},
		{"zero denominator", "30/0", 0, true},
		{"garbage", "abc", 0, true},
		{"rational garbage numerator", "x/1001", 0, true},
		{"empty", "", 0, true},
		{"negative decimal", "-25", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseRate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int64
		wantErr bool
	}{
		// 10 s at 30 fps → 300 frames.
		{"ten seconds at 30fps", "30/1\n10.000000\n", 300, false},
		// floor(10 × 30000/1001) = floor(299.7) = 299.
		{"ntsc truncates", "30000/1001\n10.000000\n", 299, false},
		{"decimal rate", "29.97\n10.000000\n", 299, false},
		{"windows line endings", "25/1\r\n4.0\r\n", 100, false},
		{"missing duration", "30/1\n", 0, true},
		{"extra field", "30/1\n10.0\n10.0\n", 0, true},
		{"N/A duration", "30/1\nN/A\n", 0, true},
		{"zero duration", "30/1\n0.0\n", 0, true},
		{"no video stream", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutput([]byte(tt.out))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutput error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseOutput = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseOutput_FloorProperty(t *testing.T) {
	// For rational rates n/d the estimate must equal floor(duration·n/d).
	cases := []struct {
		rate     string
		duration string
		want     int64
	}{
		{"24000/1001", "3600.000000", 86313},  // floor(3600 × 23.976...)
		{"50/1", "0.040000", 2},               // exactly 2 frames
		{"30000/1001", "0.033367", 1},         // one NTSC frame
	}
	for _, c := range cases {
		got, err := ParseOutput([]byte(c.rate + "\n" + c.duration + "\n"))
		if err != nil {
			t.Fatalf("ParseOutput(%s, %s): %v", c.rate, c.duration, err)
		}
		if got != c.want {
			t.Errorf("ParseOutput(%s, %s) = %d, want %d", c.rate, c.duration, got, c.want)
		}
	}
}

func TestParseOutput_ErrorMentionsField(t *testing.T) {
	_, err := ParseOutput([]byte("bogus\n10.0\n"))
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should carry the offending field text, got %v", err)
	}
}
