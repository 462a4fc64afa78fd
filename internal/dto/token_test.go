package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

// Redemption reports bad codes as a business outcome, not a binding error,
// so the request must bind for any non-empty token string.
func TestRedeemTokenRequestBinding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"canonical code", `{"token":"TFX-A1B2C3-D4E5F6","userId":"u-1"}`, false},
		{"padded lowercase code", `{"token":"  tfx-a1b2c3-d4e5f6 ","userId":"u-1"}`, false},
		{"arbitrary string", `{"token":"not-a-code","userId":"u-1"}`, false},
		{"missing token", `{"userId":"u-1"}`, true},
		{"missing userId", `{"token":"TFX-A1B2C3-D4E5F6"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RedeemTokenRequest
			err := binding.JSON.BindBody([]byte(tt.body), &req)
			if (err != nil) != tt.wantErr {
				t.Errorf("bind %s: err = %v, wantErr %v", tt.body, err, tt.wantErr)
			}
		})
	}
}
