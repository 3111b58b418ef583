package catalog

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// StockAction identifies a direct stock mutation requested by a stock admin
type StockAction string

const (
	StockActionAdd         StockAction = "add"
	StockActionRemove      StockAction = "remove"
	StockActionDamage      StockAction = "damage"
	StockActionAdjust      StockAction = "adjust"
	StockActionOfflineSale StockAction = "offline_sale"
)

// IsValid checks if the action is a known StockAction
func (a StockAction) IsValid() bool {
	switch a {
	case StockActionAdd, StockActionRemove, StockActionDamage, StockActionAdjust, StockActionOfflineSale:
		return true
	}
	return false
}

// String returns the string representation of StockAction
func (a StockAction) String() string {
	return string(a)
}

// InitializeStock sets the ledger counters at product creation time.
//
// When variants exist, totalStock is positive and no variant carries stock
// yet, totalStock is spread evenly across variants: every size entry of every
// variant receives floor(totalStock / variantCount). The divisor is the
// variant count, not the size count, matching the storefront's historical
// distribution rule that downstream reports rely on.
func (p *Product) InitializeStock(totalStock, onlineSales, offlineSales int) {
	p.TotalStock = totalStock
	p.OnlineSales = onlineSales
	p.OfflineSales = offlineSales

	if len(p.Variants) > 0 && p.TotalStock > 0 && p.Variants.StockSum() == 0 {
		p.setEverySize(p.TotalStock / len(p.Variants))
	}

	p.recomputeAvailableStock()
	p.UpdatedAt = time.Now()
}

// SyncTotalStock applies a totalStock change from a product update.
//
// Distribution only happens when the existing per-size stock sums to exactly
// zero, and only size entries currently at zero are overwritten; nonzero
// entries are left untouched.
func (p *Product) SyncTotalStock(totalStock int) {
	p.TotalStock = totalStock

	if len(p.Variants) > 0 && p.Variants.StockSum() == 0 {
		per := p.TotalStock / len(p.Variants)
		for vi := range p.Variants {
			for si := range p.Variants[vi].Sizes {
				if p.Variants[vi].Sizes[si].Stock == 0 {
					p.Variants[vi].Sizes[si].Stock = per
				}
			}
		}
	}

	p.recomputeAvailableStock()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ApplyStockAction executes a direct stock mutation.
//
// Quantity is taken as supplied; negative quantities propagate through the
// arithmetic unchecked. After the action branch runs, AvailableStock is
// recomputed and a corrective pass forces every size entry to
// floor(TotalStock / variantCount) whenever the variant sum has drifted from
// TotalStock. The corrective pass can flatten asymmetric per-size counts.
func (p *Product) ApplyStockAction(action StockAction, quantity int) error {
	switch action {
	case StockActionAdd:
		p.TotalStock += quantity
		if len(p.Variants) > 0 {
			p.addToEverySize(quantity / len(p.Variants))
		}

	case StockActionRemove, StockActionDamage:
		oldTotal := p.TotalStock
		newTotal := oldTotal - quantity
		if newTotal < 0 {
			newTotal = 0
		}
		for vi := range p.Variants {
			for si := range p.Variants[vi].Sizes {
				if oldTotal > 0 {
					p.Variants[vi].Sizes[si].Stock = p.Variants[vi].Sizes[si].Stock * newTotal / oldTotal
				} else {
					p.Variants[vi].Sizes[si].Stock = 0
				}
			}
		}
		p.TotalStock = newTotal

	case StockActionAdjust:
		p.TotalStock = quantity
		if len(p.Variants) > 0 {
			p.setEverySize(quantity / len(p.Variants))
		}

	case StockActionOfflineSale:
		p.OfflineSales += quantity

	default:
		return shared.NewDomainError("INVALID_ACTION", "Unknown stock action: "+string(action))
	}

	p.recomputeAvailableStock()
	p.reconcileVariantStock()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockAdjustedEvent(p, action, quantity))

	return nil
}

// RecordOnlineSale accrues an online sale against the ledger counters.
// Variant-level stock is not decremented on order placement; only the
// aggregate counters move.
func (p *Product) RecordOnlineSale(quantity int) {
	p.OnlineSales += quantity
	p.recomputeAvailableStock()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// recomputeAvailableStock re-derives AvailableStock from the three counters.
// No floor is applied; the result may be negative.
func (p *Product) recomputeAvailableStock() {
	p.AvailableStock = p.TotalStock - p.OnlineSales - p.OfflineSales
}

// reconcileVariantStock forces the variant sum back to TotalStock when they
// disagree, overwriting every size entry with the even share.
func (p *Product) reconcileVariantStock() {
	if len(p.Variants) == 0 || p.TotalStock <= 0 {
		return
	}
	if p.Variants.StockSum() == p.TotalStock {
		return
	}
	p.setEverySize(p.TotalStock / len(p.Variants))
}

func (p *Product) setEverySize(stock int) {
	for vi := range p.Variants {
		for si := range p.Variants[vi].Sizes {
			p.Variants[vi].Sizes[si].Stock = stock
		}
	}
}

func (p *Product) addToEverySize(delta int) {
	for vi := range p.Variants {
		for si := range p.Variants[vi].Sizes {
			p.Variants[vi].Sizes[si].Stock += delta
		}
	}
}
