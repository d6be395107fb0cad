package config

import "testing"

func TestBookingConfigFromEnv(t *testing.T) {
	t.Setenv("SLOT_SEED_WINDOW_DAYS", "21")
	t.Setenv("SESSION_IDLE_TTL_MINUTES", "15")

	cfg := Load()

	if cfg.Booking.SeedWindowDays != 21 {
		t.Errorf("SeedWindowDays = %d, want 21", cfg.Booking.SeedWindowDays)
	}
	if cfg.Booking.SessionIdleTTLMin != 15 {
		t.Errorf("SessionIdleTTLMin = %d, want 15", cfg.Booking.SessionIdleTTLMin)
	}
}

func TestBookingConfigDefaults(t *testing.T) {
	t.Setenv("SLOT_SEED_WINDOW_DAYS", "")
	t.Setenv("SESSION_IDLE_TTL_MINUTES", "")

	cfg := Load()

	if cfg.Booking.SeedWindowDays != 14 {
		t.Errorf("default SeedWindowDays = %d, want 14", cfg.Booking.SeedWindowDays)
	}
	if cfg.Booking.SessionIdleTTLMin != 60 {
		t.Errorf("default SessionIdleTTLMin = %d, want 60", cfg.Booking.SessionIdleTTLMin)
	}
}
