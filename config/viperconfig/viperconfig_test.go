package viperconfig

import "testing"

func TestLoadDefaultsMatchSpec(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinCharge != 5 || cfg.MaxCharge != 50 {
		t.Errorf("charge range = [%d, %d], want [5, 50]", cfg.MinCharge, cfg.MaxCharge)
	}
	if cfg.NoiseCutoff != 1000.0 {
		t.Errorf("noise_cutoff = %v, want 1000.0", cfg.NoiseCutoff)
	}
	if cfg.MWAgreement != 5e-4 {
		t.Errorf("mw_agreement = %v, want 5e-4", cfg.MWAgreement)
	}
}

func TestNewOverrideViaViper(t *testing.T) {
	v := New()
	v.Set("min_charge", 8)
	cfg := FromViper(v)
	if cfg.MinCharge != 8 {
		t.Errorf("min_charge = %d, want 8 after override", cfg.MinCharge)
	}
}
