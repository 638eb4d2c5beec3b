package utils

import (
	"testing"
	"time"

	"tasknest/config"
	"tasknest/models"
)

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-secret"
	config.AppConfig.TokenTTL = 15 * time.Minute

	user := &models.User{ID: 42, TokenVersion: 3}
	token, expiresIn, err := GenerateJWTToken(user)
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}
	if expiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in = %d, want 900", expiresIn)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("ParseJWTToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("token version = %d, want 3", claims.TokenVersion)
	}
}

func TestJWTRejectsWrongKey(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-secret"
	config.AppConfig.TokenTTL = 15 * time.Minute

	token, _, err := GenerateJWTToken(&models.User{ID: 1})
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}

	config.AppConfig.EncryptionKey = "another-secret"
	if _, err := ParseJWTToken(token); err == nil {
		t.Fatal("token signed with a different key was accepted")
	}
}
