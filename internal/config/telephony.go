package config

import "os"

// EnvTelephonyPhoneNumberID overrides the default outbound phone number.
const EnvTelephonyPhoneNumberID = "TELEPHONY_PHONE_NUMBER_ID"

// TelephonyConfig contains outbound calling configuration.
type TelephonyConfig struct {
	// PhoneNumberID is the provisioned vendor phone number used for
	// outbound calls when a request does not specify one.
	PhoneNumberID string `toml:"phone_number_id"`
}

// Finalize loads environment overrides.
func (c *TelephonyConfig) Finalize() error {
	c.loadEnv()
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *TelephonyConfig) Merge(overlay *TelephonyConfig) {
	if overlay.PhoneNumberID != "" {
		c.PhoneNumberID = overlay.PhoneNumberID
	}
}

func (c *TelephonyConfig) loadEnv() {
	if v := os.Getenv(EnvTelephonyPhoneNumberID); v != "" {
		c.PhoneNumberID = v
	}
}
