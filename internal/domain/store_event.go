package domain

import "time"

const EventStoreSeeded = "store.seeded"

type StoreSeededEvent struct {
	Forced   bool        `json:"forced"`
	Counts   TableCounts `json:"counts"`
	SeededAt time.Time   `json:"seededAt"`
}
