package models

// SpendTotal matches the spend-total response: aggregate predicted spend for
// the current query scope.
type SpendTotal struct {
	SpendTotal          int `json:"spend_total"`
	SpendHospitality    int `json:"spend_hospo"`
	SpendAccommodation  int `json:"spend_accom"`
	SpendTransportation int `json:"spend_trans"`
}
