package models

// Customer is the bill-to party printed on an invoice.
type Customer struct {
	Name    string `json:"name" validate:"max=200"`
	Mobile  string `json:"mobile" validate:"max=32"`
	Address string `json:"address" validate:"max=500"`
	GSTNo   string `json:"gst_no" validate:"max=32"`
}
