package session

// Feedback messages shown by the builder UI.
const (
	msgBunMissing       = "Please select a bun to continue."
	msgBunSelected      = "Bun selected ✓"
	msgToppingsMissing  = "Pick at least one topping for a proper burger."
	msgToppingsSelected = "Looks tasty! Keep adding or proceed."

	msgBunLocked          = "Bun is confirmed and cannot change."
	msgToppingsEditable   = "Bun is confirmed. Toppings remain editable, but bun cannot change."
	msgConfirmNeedsBun    = "Select a bun first."
	msgBunConfirmed       = "Bun confirmed: %s."
	msgFavoriteIncomplete = "Select a bun and at least one topping before saving favorite."
	msgFavoriteSaved      = "Favorite saved! You can apply it anytime."
	msgNoFavorite         = "No favorite found. Save one first."
	msgFavoriteApplied    = "Favorite applied. Yum!"
	msgNoLastOrder        = "No last order found this session."
	msgLastOrderApplied   = "Last order rebuilt for you."
	msgCheckoutNotReady   = "Complete your selection first."
	msgOrderPlaced        = "Order placed! Summary updated below."
	msgWelcome            = "Welcome, %s"
)
