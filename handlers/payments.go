package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mariamadly/loomkids-backend-go/config"
	"github.com/mariamadly/loomkids-backend-go/utils"
)

// PaymobCallback handles Paymob's transaction-processed redirect. The query
// string carries the flattened transaction fields plus an hmac parameter;
// nothing is written unless the signature checks out.
func (h *Handler) PaymobCallback(c echo.Context) error {
	secret := config.GetEnv("PAYMOB_HMAC_SECRET", "")
	if secret == "" {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Paymob is not configured"})
	}

	params := c.QueryParams()
	fields := make(map[string]string, len(params))
	for key := range params {
		fields[key] = params.Get(key)
	}

	received := fields["hmac"]
	if received == "" || !utils.VerifyPaymobHMAC(fields, received, secret) {
		h.Log.Warn().Msg("paymob callback rejected: bad hmac")
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid signature"})
	}

	orderID := fields["merchant_order_id"]
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing merchant_order_id"})
	}
	success := fields["success"] == "true"

	if err := h.Engine.SetPaymentOutcome(c.Request().Context(), orderID, success); err != nil {
		return c.JSON(engineStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Payment recorded"})
}
