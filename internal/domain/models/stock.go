package models

import "time"

// StockItem is one entry of the stock mapping.
type StockItem struct {
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// Snapshot is the persisted form of the stock mapping, in iteration order.
type Snapshot struct {
	Items []StockItem
}

// Len returns the number of items in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Items)
}

// ToMap flattens the snapshot into a name -> quantity map.
func (s Snapshot) ToMap() map[string]int {
	out := make(map[string]int, len(s.Items))
	for _, item := range s.Items {
		out[item.Name] = item.Quantity
	}
	return out
}

// LogEntry records a single successful add.
type LogEntry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Item     string    `json:"item"`
	Quantity int       `json:"quantity"`
	Message  string    `json:"message"`
}
