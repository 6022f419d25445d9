package cafeapi

type ReservationRequest struct {
	Name      *string `json:"name"`
	PartySize int     `json:"party_size"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
}

type MenuFilter struct {
	Dietary  string
	Category string
}

type OrderRequest struct {
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	DeliveryType  *string `json:"delivery_type"`
	Address       *string `json:"address"`
	PaymentMethod *string `json:"payment_method"`
	Items         any     `json:"items"`
}

type FeedbackRequest struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
