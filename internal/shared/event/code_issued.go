package event

const CodeIssuedDestination string = "verification_code_issued"
const CodeIssuedConsumerNotification string = "verification_code_issued_notification"

type CodeIssuedMessage struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	Purpose   string `json:"purpose"`
	ExpiresAt int64  `json:"expires_at"`
}
