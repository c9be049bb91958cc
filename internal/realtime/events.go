package realtime

import "github.com/google/uuid"

// ChannelChanges carries every collection change notification. Any
// authenticated client may subscribe; payloads hold ids only.
const ChannelChanges = "changes"

type SSEEvent string

const (
	SSEEventHospitalCreated SSEEvent = "HospitalCreated"
	SSEEventHospitalUpdated SSEEvent = "HospitalUpdated"
	SSEEventHospitalDeleted SSEEvent = "HospitalDeleted"

	SSEEventDoctorCreated SSEEvent = "DoctorCreated"
	SSEEventDoctorDeleted SSEEvent = "DoctorDeleted"

	SSEEventUserCreated SSEEvent = "UserCreated"
	SSEEventUserUpdated SSEEvent = "UserUpdated"
	SSEEventUserDeleted SSEEvent = "UserDeleted"

	SSEEventBloodDonationCreated SSEEvent = "BloodDonationCreated"
	SSEEventBloodDonationUpdated SSEEvent = "BloodDonationUpdated"
	SSEEventBloodDonationDeleted SSEEvent = "BloodDonationDeleted"

	SSEEventBloodRequestCreated SSEEvent = "BloodRequestCreated"
	SSEEventBloodRequestUpdated SSEEvent = "BloodRequestUpdated"
	SSEEventBloodRequestDeleted SSEEvent = "BloodRequestDeleted"

	SSEEventOrganDonationCreated SSEEvent = "OrganDonationCreated"
	SSEEventOrganDonationUpdated SSEEvent = "OrganDonationUpdated"
	SSEEventOrganDonationDeleted SSEEvent = "OrganDonationDeleted"

	SSEEventOrganRequestCreated SSEEvent = "OrganRequestCreated"
	SSEEventOrganRequestUpdated SSEEvent = "OrganRequestUpdated"
	SSEEventOrganRequestDeleted SSEEvent = "OrganRequestDeleted"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// Change builds the notification sent after a row was written.
func Change(event SSEEvent, id uuid.UUID) SSEMessage {
	return SSEMessage{
		Channel: ChannelChanges,
		Event:   event,
		Data:    map[string]any{"id": id.String()},
	}
}
