package core

import (
	"strconv"
	"testing"
	"time"
)

func TestGetSeedFromEnv(t *testing.T) {
	expectedSeed := int64(12345)
	t.Setenv(SeedEnv, strconv.FormatInt(expectedSeed, 10))

	seed := GetSeed()
	if seed != expectedSeed {
		t.Errorf("GetSeed() = %d; want %d", seed, expectedSeed)
	}
}

func TestGetSeedFromEnvInvalid(t *testing.T) {
	t.Setenv(SeedEnv, "invalid")

	seed := GetSeed()
	if seed == 0 {
		t.Errorf("GetSeed() = %d; want non-zero value", seed)
	}
}

func TestGetSeedFromTime(t *testing.T) {
	t.Setenv(SeedEnv, "")

	seed1 := GetSeed()
	time.Sleep(1 * time.Millisecond)
	seed2 := GetSeed()

	if seed1 == seed2 {
		t.Errorf("GetSeed() = %d; subsequent call returned the same seed %d", seed1, seed2)
	}
}

func TestSeedFromEnv(t *testing.T) {
	for _, tc := range []struct {
		value string
		seed  int64
		ok    bool
	}{
		{"42", 42, true},
		{" -7\n", -7, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"1.5", 0, false},
		{"99999999999999999999", 0, false},
	} {
		t.Setenv(SeedEnv, tc.value)
		seed, ok := SeedFromEnv()
		if seed != tc.seed || ok != tc.ok {
			t.Errorf("SeedFromEnv() with %q = (%d, %t); want (%d, %t)", tc.value, seed, ok, tc.seed, tc.ok)
		}
	}
}
