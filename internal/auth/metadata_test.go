package auth

import "testing"

func TestSessionFormData(t *testing.T) {
	data := SessionFormData("9")

	if data["api_version"] != "9" {
		t.Fatalf("api_version = %q, want 9", data["api_version"])
	}
	if data["device[os]"] != "android" {
		t.Fatalf("device[os] = %q, want android", data["device[os]"])
	}
	if data["device[hardware_id]"] == "" {
		t.Fatal("device[hardware_id] is empty")
	}
}

func TestSessionFormDataFreshHardwareID(t *testing.T) {
	a := SessionFormData("9")
	b := SessionFormData("9")

	if a["device[hardware_id]"] == b["device[hardware_id]"] {
		t.Fatal("hardware_id repeated across logins")
	}
}
