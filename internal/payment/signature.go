package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// MoMo signs requests and callbacks with HMAC-SHA256 over an ampersand-joined
// key=value string. The field set and ordering differ between the
// create-payment request and the IPN callback and must match the provider's
// canonicalization byte for byte.

func sign(rawSignature, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(rawSignature))
	return hex.EncodeToString(mac.Sum(nil))
}

// createRawSignature builds the canonical string for the create-payment request.
func createRawSignature(accessKey string, amount int64, extraData, ipnURL, orderID, orderInfo, partnerCode, redirectURL, requestID, requestType string) string {
	return strings.Join([]string{
		"accessKey=" + accessKey,
		fmt.Sprintf("amount=%d", amount),
		"extraData=" + extraData,
		"ipnUrl=" + ipnURL,
		"orderId=" + orderID,
		"orderInfo=" + orderInfo,
		"partnerCode=" + partnerCode,
		"redirectUrl=" + redirectURL,
		"requestId=" + requestID,
		"requestType=" + requestType,
	}, "&")
}

// ipnRawSignature builds the canonical string for the IPN/return callback.
// Note the field set is wider than at initiation time (result fields are
// included) and everything is ordered alphabetically by key.
func ipnRawSignature(accessKey string, n MomoIPN) string {
	return strings.Join([]string{
		"accessKey=" + accessKey,
		fmt.Sprintf("amount=%d", n.Amount),
		"extraData=" + n.ExtraData,
		"message=" + n.Message,
		"orderId=" + n.OrderID,
		"orderInfo=" + n.OrderInfo,
		"orderType=" + n.OrderType,
		"partnerCode=" + n.PartnerCode,
		"payType=" + n.PayType,
		"requestId=" + n.RequestID,
		fmt.Sprintf("responseTime=%d", n.ResponseTime),
		fmt.Sprintf("resultCode=%d", n.ResultCode),
		fmt.Sprintf("transId=%d", n.TransID),
	}, "&")
}

// verifySignature compares in constant time.
func verifySignature(raw, secretKey, got string) bool {
	want := sign(raw, secretKey)
	return hmac.Equal([]byte(want), []byte(got))
}
