package phase

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/shop"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// CashOutSystem runs a shop visit: stock on entry if sold out, then
// purchases until the player leaves.
type CashOutSystem struct {
	keeper *shop.Keeper
	logger *zap.Logger

	selected int
	done     bool
}

// NewCashOutSystem creates the cash-out system.
//
// Precondition: keeper and logger must be non-nil.
func NewCashOutSystem(keeper *shop.Keeper, logger *zap.Logger) *CashOutSystem {
	return &CashOutSystem{keeper: keeper, logger: logger}
}

// Enter stocks the shop if it is sold out and resets the cursor.
func (c *CashOutSystem) Enter(s *world.State) {
	c.done = false
	c.selected = 0
	c.keeper.Stock(s)

	c.logger.Info("shop entered",
		zap.Int("stock", len(s.ShopItems)),
		zap.Int("gold", s.Player.Gold),
	)
}

// Done reports whether the player has left the shop.
func (c *CashOutSystem) Done() bool { return c.done }

// Selected returns the index of the highlighted shop item.
func (c *CashOutSystem) Selected() int { return c.selected }

// Update moves the cursor, resolves purchase attempts, and leaves the
// shop on cancel or once the stock is sold out.
func (c *CashOutSystem) Update(s *world.State, dt float64, in intent.Frame) {
	if c.done {
		return
	}

	if in.Cancel {
		c.done = true
		c.logger.Info("shop left",
			zap.Int("gold", s.Player.Gold),
		)
		return
	}

	if len(s.ShopItems) == 0 {
		c.done = true
		return
	}

	if in.SelectDelta != 0 {
		c.selected = clamp(c.selected+in.SelectDelta, 0, len(s.ShopItems)-1)
	}

	buy := -1
	if in.Numeric >= 1 && in.Numeric <= len(s.ShopItems) {
		buy = in.Numeric - 1
	} else if in.Confirm {
		buy = c.selected
	}
	if buy < 0 {
		return
	}

	if c.keeper.Purchase(s, buy) == shop.Purchased {
		// The stock shrank under the cursor.
		if c.selected >= len(s.ShopItems) && c.selected > 0 {
			c.selected = len(s.ShopItems) - 1
		}
	}
}
