// Package auth builds the client metadata the Ring API requires when
// exchanging account credentials for an auth token.
package auth

import "github.com/google/uuid"

// SessionFormData returns the device-fingerprint form fields the session
// endpoint requires. The values mirror the Ring Android client; the API
// refuses logins without them, but none of them carry meaning for this
// client beyond being present. hardware_id is freshly generated per login.
func SessionFormData(apiVersion string) map[string]string {
	return map[string]string{
		"device[os]":                              "android",
		"device[hardware_id]":                     uuid.NewString(),
		"device[app_brand]":                       "ring",
		"device[metadata][device_model]":          "Visual Studio Emulator for Android",
		"device[metadata][resolution]":            "600x800",
		"device[metadata][app_version]":           "1.7.29",
		"device[metadata][app_installation_date]": "",
		"device[metadata][os_version]":            "4.4.4",
		"device[metadata][manufacturer]":          "Microsoft",
		"device[metadata][is_tablet]":             "true",
		"device[metadata][linphone_initialized]":  "true",
		"device[metadata][language]":              "en",
		"api_version":                             apiVersion,
	}
}
