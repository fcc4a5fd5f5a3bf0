package event

const VoteReceiptDestination string = "vote_receipt_issued"
const VoteReceiptConsumerNotification string = "vote_receipt_issued_notification"

type VoteReceiptMessage struct {
	Email            string `json:"email"`
	TransactionRef   string `json:"transaction_ref"`
	ConstituencyName string `json:"constituency_name"`
	CastAt           int64  `json:"cast_at"`
}
