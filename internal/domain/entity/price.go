package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Price is one observed quote for an asset on a date. (asset_id, date) is
// unique per user; re-saving the same day overwrites price and source.
type Price struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AssetID   uuid.UUID
	Date      time.Time
	Price     decimal.Decimal
	Source    string
	CreatedAt time.Time
}

// NewPrice creates a new Price entity.
func NewPrice(userID, assetID uuid.UUID, date time.Time, price decimal.Decimal, source string) *Price {
	return &Price{
		ID:        uuid.New(),
		UserID:    userID,
		AssetID:   assetID,
		Date:      date,
		Price:     price,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
}
