package marketdata

import "github.com/stockport/portfolio-engine/internal/domain"

// listing is one entry in the simulated market catalog
type listing struct {
	Symbol   string
	Name     string
	Base     float64 // reference price the walk oscillates around
	Category domain.AssetCategory
}

// catalog is the simulated market universe. Prices drift deterministically
// per symbol, so tests and repeated fetches see stable values.
var catalog = []listing{
	{Symbol: "AAPL", Name: "Apple Inc.", Base: 174.26, Category: domain.CategoryEquity},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Base: 138.93, Category: domain.CategoryEquity},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Base: 378.85, Category: domain.CategoryEquity},
	{Symbol: "TSLA", Name: "Tesla, Inc.", Base: 258.14, Category: domain.CategoryEquity},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Base: 495.22, Category: domain.CategoryEquity},
	{Symbol: "AMZN", Name: "Amazon.com, Inc.", Base: 151.94, Category: domain.CategoryEquity},
	{Symbol: "BND", Name: "Vanguard Total Bond Market ETF", Base: 72.45, Category: domain.CategoryDebt},
	{Symbol: "AGG", Name: "iShares Core U.S. Aggregate Bond ETF", Base: 98.12, Category: domain.CategoryDebt},
	{Symbol: "VBAL", Name: "Vanguard Balanced ETF", Base: 31.08, Category: domain.CategoryHybrid},
	{Symbol: "AOR", Name: "iShares Core Growth Allocation ETF", Base: 56.73, Category: domain.CategoryHybrid},
	{Symbol: "GLD", Name: "SPDR Gold Shares", Base: 189.45, Category: domain.CategoryOther},
	{Symbol: "VNQ", Name: "Vanguard Real Estate ETF", Base: 87.63, Category: domain.CategoryOther},
}
