package main

import "testing"

func TestPlanWindowsPowerOfTwo(t *testing.T) {
	plan, err := planWindows(48000, 20, 480000)
	if err != nil {
		t.Fatalf("planWindows: %v", err)
	}
	if plan.W&(plan.W-1) != 0 {
		t.Errorf("W = %d is not a power of two", plan.W)
	}
	if plan.H != plan.W/2 {
		t.Errorf("H = %d, want W/2 = %d", plan.H, plan.W/2)
	}
	if plan.KMin <= 0 {
		t.Errorf("KMin = %d, want > 0", plan.KMin)
	}
}

func TestPlanWindowsLowerFLowGivesLargerWindow(t *testing.T) {
	low, err := planWindows(48000, 20, 480000)
	if err != nil {
		t.Fatalf("planWindows low: %v", err)
	}
	high, err := planWindows(48000, 200, 480000)
	if err != nil {
		t.Fatalf("planWindows high: %v", err)
	}
	if low.W < high.W {
		t.Errorf("lower -low should need a window at least as large: W(low)=%d < W(high)=%d", low.W, high.W)
	}
}

func TestPlanWindowsRejectsInvalidLow(t *testing.T) {
	if _, err := planWindows(48000, 0, 48000); err == nil {
		t.Error("expected error for -low = 0")
	}
	if _, err := planWindows(48000, 30000, 48000); err == nil {
		t.Error("expected error for -low at/above Nyquist")
	}
}

func TestPlanWindowsShortFileSingleWindow(t *testing.T) {
	plan, err := planWindows(48000, 20, 10)
	if err != nil {
		t.Fatalf("planWindows: %v", err)
	}
	if plan.M != 1 || plan.Starts[0] != 0 {
		t.Errorf("short file should plan exactly one window at 0, got %+v", plan.Starts)
	}
}
