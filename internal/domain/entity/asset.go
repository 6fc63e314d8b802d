package entity

import (
	"time"

	"github.com/google/uuid"
)

// AssetClass is the closed set of investment asset classes.
type AssetClass string

const (
	AssetClassStockBR       AssetClass = "ACAO_BR"
	AssetClassFII           AssetClass = "FII"
	AssetClassETFBR         AssetClass = "ETF_BR"
	AssetClassBDR           AssetClass = "BDR"
	AssetClassStockUS       AssetClass = "STOCK_US"
	AssetClassETFUS         AssetClass = "ETF_US"
	AssetClassCrypto        AssetClass = "CRYPTO"
	AssetClassFixedIncome   AssetClass = "RENDA_FIXA"
	AssetClassCash          AssetClass = "CAIXA"
	AssetClassTreasuryBR    AssetClass = "TESOURO_DIRETO"
	AssetClassFund          AssetClass = "FUNDOS"
	AssetClassStructured    AssetClass = "COE"
	AssetClassOther         AssetClass = "OUTROS"
)

// AllAssetClasses lists every known asset class, in display order.
var AllAssetClasses = []AssetClass{
	AssetClassStockBR,
	AssetClassFII,
	AssetClassETFBR,
	AssetClassBDR,
	AssetClassStockUS,
	AssetClassETFUS,
	AssetClassCrypto,
	AssetClassFixedIncome,
	AssetClassCash,
	AssetClassTreasuryBR,
	AssetClassFund,
	AssetClassStructured,
	AssetClassOther,
}

// IsValidAssetClass reports whether the given class is known.
func IsValidAssetClass(c AssetClass) bool {
	for _, known := range AllAssetClasses {
		if c == known {
			return true
		}
	}
	return false
}

// IsFixedIncome reports whether the class follows the fixed-income tax
// policy: taxes (IR/IOF) apply at redemption, not at entry, so they are
// excluded from cost basis on BUY.
func (c AssetClass) IsFixedIncome() bool {
	switch c {
	case AssetClassFixedIncome, AssetClassTreasuryBR, AssetClassStructured, AssetClassFund:
		return true
	}
	return false
}

// IsB3Listed reports whether quotes for the class resolve on the Brazilian
// exchange (prefers the BRAPI provider).
func (c AssetClass) IsB3Listed() bool {
	switch c {
	case AssetClassStockBR, AssetClassFII, AssetClassETFBR, AssetClassBDR:
		return true
	}
	return false
}

// IsCrypto reports whether the class quotes as a crypto pair.
func (c AssetClass) IsCrypto() bool {
	return c == AssetClassCrypto
}

// Asset represents an investment instrument held in the portfolio.
type Asset struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Symbol          string
	Name            string
	AssetClass      AssetClass
	Sector          string
	Currency        Currency
	BrokerAccountID *uuid.UUID
	SourceAccountID *uuid.UUID
	Issuer          string     // fixed-income metadata
	MaturityDate    *time.Time // fixed-income metadata
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewAsset creates a new Asset entity.
func NewAsset(
	userID uuid.UUID,
	symbol string,
	name string,
	assetClass AssetClass,
	sector string,
	currency Currency,
	brokerAccountID *uuid.UUID,
	sourceAccountID *uuid.UUID,
	issuer string,
	maturityDate *time.Time,
) *Asset {
	now := time.Now().UTC()

	return &Asset{
		ID:              uuid.New(),
		UserID:          userID,
		Symbol:          symbol,
		Name:            name,
		AssetClass:      assetClass,
		Sector:          sector,
		Currency:        currency,
		BrokerAccountID: brokerAccountID,
		SourceAccountID: sourceAccountID,
		Issuer:          issuer,
		MaturityDate:    maturityDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
