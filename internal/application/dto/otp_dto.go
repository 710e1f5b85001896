package dto

// VerifyOTPRequest canje de un OTP en el punto de recogida.
type VerifyOTPRequest struct {
	Code string `json:"code"`
}

// RedeemResponse resultado del canje: todas las líneas recién entregadas del GRN.
type RedeemResponse struct {
	GRNID          string         `json:"grn_id"`
	DeliveredLines []LineResponse `json:"delivered_lines"`
}

// ResendResponse confirmación del reenvío de OTP.
type ResendResponse struct {
	GRNID  string `json:"grn_id"`
	SentTo string `json:"sent_to"`
}
