package dto

import "testing"

func TestUpdateProgressRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateProgressRequest
		wantErr bool
	}{
		{"valid minimal", UpdateProgressRequest{CourseID: "c1", LessonID: "l1"}, false},
		{"valid with delta", UpdateProgressRequest{CourseID: "c1", LessonID: "l1", TimeSpent: intPtr(30)}, false},
		{"missing course", UpdateProgressRequest{LessonID: "l1"}, true},
		{"missing lesson", UpdateProgressRequest{CourseID: "c1"}, true},
		{"negative delta", UpdateProgressRequest{CourseID: "c1", LessonID: "l1", TimeSpent: intPtr(-5)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHeartbeatRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		wantErr bool
	}{
		{"one second", 1, false},
		{"full tick", 60, false},
		{"zero", 0, true},
		{"too large", 61, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := HeartbeatRequest{CourseID: "c1", LessonID: "l1", Seconds: tt.seconds}
			if err := req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentEventRequestValidate(t *testing.T) {
	valid := DocumentEventRequest{CourseID: "c1", LessonID: "l1", CurrentPage: 3, TotalPages: 10}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	zeroPage := DocumentEventRequest{CourseID: "c1", LessonID: "l1", CurrentPage: 0, TotalPages: 10}
	if err := zeroPage.Validate(); err == nil {
		t.Error("page numbers start at 1")
	}
}

func TestRegisterRequestPasswordStrength(t *testing.T) {
	base := func(password string) RegisterRequest {
		return RegisterRequest{Email: "user@example.com", Username: "janedoe", Password: password}
	}

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"strong", "SecurePass123!", false},
		{"too short", "Ab1!", true},
		{"no uppercase", "securepass123!", true},
		{"no number", "SecurePass!", true},
		{"no special", "SecurePass123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := base(tt.password).Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
