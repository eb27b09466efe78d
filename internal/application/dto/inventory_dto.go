package dto

import "time"

// AdjustmentRequest corrección manual de stock (cantidad con signo).
type AdjustmentRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// MovementResponse fila de kardex para la API.
type MovementResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"productId"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	Reference     string    `json:"reference"`
	Timestamp     time.Time `json:"timestamp"`
}
