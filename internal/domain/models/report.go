package models

import "time"

// LowStockAlert is the payload posted to the alert webhook.
type LowStockAlert struct {
	ID          string      `bson:"id" json:"id"`
	Threshold   int         `bson:"threshold" json:"threshold"`
	Items       []StockItem `bson:"items" json:"items"`
	GeneratedAt time.Time   `bson:"generated_at" json:"generated_at"`
}
