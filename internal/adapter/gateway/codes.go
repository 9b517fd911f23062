package gateway

// ResponseCodeSuccess is the gateway response code for a completed payment.
const ResponseCodeSuccess = "00"

var responseMessages = map[string]string{
	"00": "Payment successful",
	"07": "Transaction flagged as suspicious",
	"09": "Card not registered for online banking",
	"10": "Card verification failed more than 3 times",
	"11": "Payment session expired",
	"12": "Card or account is locked",
	"13": "Wrong one-time password",
	"24": "Customer cancelled payment",
	"51": "Insufficient funds",
	"65": "Daily transaction limit exceeded",
	"75": "Issuing bank under maintenance",
	"79": "Wrong payment password entered too many times",
	"99": "Unknown error",
}

// MessageForCode maps a gateway response code to a user-facing message.
func MessageForCode(code string) string {
	if msg, ok := responseMessages[code]; ok {
		return msg
	}
	return responseMessages["99"]
}
