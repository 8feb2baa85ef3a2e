package claims

import "fmt"

// ClaimMessage builds the notification text shown to the donor.
func ClaimMessage(claimantName string, quantity int, listingTitle string) string {
	unit := "items"
	if quantity == 1 {
		unit = "item"
	}
	return fmt.Sprintf("%s has claimed %d %s from your listing %q. Contact them to arrange pickup.",
		claimantName, quantity, unit, listingTitle)
}
