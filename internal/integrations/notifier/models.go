package notifier

// ConfirmationMessage сообщение об успешном завершении бронирования on-chain.
// Потребляется mailer-сервисом (вне этого репозитория)
type ConfirmationMessage struct {
	BookingHash string `json:"bookingHash"`
	Email       string `json:"email"`
	Event       string `json:"event"`
	BlockNumber uint64 `json:"blockNumber"`
	SentAt      string `json:"sentAt"`
}

// ChangeNoticeMessage сообщение об изменении гостя бронирования on-chain
type ChangeNoticeMessage struct {
	BookingHash string `json:"bookingHash"`
	Email       string `json:"email"`
	Event       string `json:"event"`
	BlockNumber uint64 `json:"blockNumber"`
	NewGuest    string `json:"newGuest"`
	SentAt      string `json:"sentAt"`
}
