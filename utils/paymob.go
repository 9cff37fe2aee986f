package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// paymobHMACFields is the field order Paymob documents for the
// TRANSACTION processed callback. The HMAC is SHA-512 over the values
// concatenated in exactly this order.
var paymobHMACFields = []string{
	"amount_cents",
	"created_at",
	"currency",
	"error_occured",
	"has_parent_transaction",
	"id",
	"integration_id",
	"is_3d_secure",
	"is_auth",
	"is_capture",
	"is_refunded",
	"is_standalone_payment",
	"is_voided",
	"order",
	"owner",
	"pending",
	"source_data.pan",
	"source_data.sub_type",
	"source_data.type",
	"success",
}

// PaymobHMAC computes the expected callback signature from the flattened
// callback fields. Missing fields contribute an empty string, matching how
// Paymob signs absent values.
func PaymobHMAC(fields map[string]string, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	for _, name := range paymobHMACFields {
		mac.Write([]byte(fields[name]))
	}
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymobHMAC checks a callback's hmac query parameter in constant time.
func VerifyPaymobHMAC(fields map[string]string, received, secret string) bool {
	expected := PaymobHMAC(fields, secret)
	return hmac.Equal([]byte(expected), []byte(received))
}
