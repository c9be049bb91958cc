package blood

import "strings"

// Types lists the eight ABO/Rh groups in the order clients display them.
var Types = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func ValidType(bt string) bool {
	bt = strings.TrimSpace(bt)
	for _, t := range Types {
		if t == bt {
			return true
		}
	}
	return false
}

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// ShelfLifeDays is how long whole blood stays usable after collection.
const ShelfLifeDays = 35
