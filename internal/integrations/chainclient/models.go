package chainclient

// eventPayload модель события из ответа шлюза
type eventPayload struct {
	Event        string       `json:"event"`
	BlockNumber  uint64       `json:"blockNumber"`
	ReturnValues returnValues `json:"returnValues"`
}

// returnValues аргументы события контракта
type returnValues struct {
	BookingHash string `json:"bookingHash"`
	NewGuest    string `json:"newGuest,omitempty"`
}

// eventsResponse ответ шлюза на запрос событий за диапазон блоков
type eventsResponse struct {
	Events []eventPayload `json:"events"`
}

// latestBlockResponse ответ шлюза с номером последнего блока
type latestBlockResponse struct {
	BlockNumber uint64 `json:"blockNumber"`
}
