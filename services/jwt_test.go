package services

import (
	"testing"
	"time"

	"github.com/apex-leadership/apex_api/model"
)

func testJWTService() *JWTService {
	return &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret-key",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc := testJWTService()

	token, err := svc.ToJWT("user-123", model.RoleUser)
	if err != nil {
		t.Fatalf("ToJWT: %v", err)
	}

	userID, role, err := svc.VerifyJWTToken(token)
	if err != nil {
		t.Fatalf("VerifyJWTToken: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("userID = %q, want user-123", userID)
	}
	if role != model.RoleUser {
		t.Errorf("role = %q, want %q", role, model.RoleUser)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := testJWTService().ToJWT("user-123", model.RoleUser)
	if err != nil {
		t.Fatalf("ToJWT: %v", err)
	}

	other := &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "different-secret"}
	if _, _, err := other.VerifyJWTToken(token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := testJWTService()
	svc.AccessTokenDuration = -time.Hour

	token, err := svc.ToJWT("user-123", model.RoleUser)
	if err != nil {
		t.Fatalf("ToJWT: %v", err)
	}

	if _, _, err := svc.VerifyJWTToken(token); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	if _, _, err := testJWTService().VerifyJWTToken("not-a-token"); err == nil {
		t.Error("malformed token must not verify")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := testJWTService()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"bare token", "abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ExtractTokenFromHeader(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
