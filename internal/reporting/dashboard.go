package reporting

const (
	roleDonor      = "donor"
	requestPending = "pending"
)

type PersonRecord struct {
	Role   string
	Status string
}

type DonationEvent struct {
	Status string
}

type RequestEvent struct {
	Status string
}

type FacilityRecord struct {
	Status string
}

type DashboardStats struct {
	TotalDonors     int64
	TotalHospitals  int64
	TotalDonations  int64
	PendingRequests int64
}

// ComputeDashboardStats counts each collection independently.
//
// TotalDonors counts every donor-role person whatever their status: an
// inactive donor is still a registered donor. TotalDonations counts every
// donation whatever its status; PendingRequests only requests still pending.
func ComputeDashboardStats(people []PersonRecord, donations []DonationEvent, requests []RequestEvent, facilities []FacilityRecord) DashboardStats {
	var stats DashboardStats
	for _, p := range people {
		if p.Role == roleDonor {
			stats.TotalDonors++
		}
	}
	stats.TotalDonations = int64(len(donations))
	for _, r := range requests {
		if r.Status == requestPending {
			stats.PendingRequests++
		}
	}
	stats.TotalHospitals = int64(len(facilities))
	return stats
}
