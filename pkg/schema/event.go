package schema

import "github.com/mesh-intelligence/ldmark/pkg/types"

// Event metadata keys.
const (
	MetaEventStartDate       = "_event_start_date"
	MetaEventEndDate         = "_event_end_date"
	MetaEventStatus          = "_event_status"
	MetaEventAttendanceMode  = "_event_attendance_mode"
	MetaEventLocation        = "_event_location"
	MetaEventLocationAddress = "_event_location_address"
	MetaEventOrganizer       = "_event_organizer"
	MetaEventOrganizerURL    = "_event_organizer_url"
	MetaEventPrice           = "_event_price"
	MetaEventCurrency        = "_event_currency"
	MetaEventAvailability    = "_event_availability"
	MetaEventTicketURL       = "_event_ticket_url"
	MetaEventValidFrom       = "_event_valid_from"
)

// NewEvent returns the Event generator.
func NewEvent() types.Generator {
	return newGenerator(definition{
		typeName:   TypeEvent,
		properties: eventProperties,
		fields: []fieldMapping{
			{key: "startDate", metaKey: MetaEventStartDate},
			{key: "endDate", metaKey: MetaEventEndDate},
			{key: "eventStatus", metaKey: MetaEventStatus, convert: schemaURI},
			{key: "eventAttendanceMode", metaKey: MetaEventAttendanceMode, convert: schemaURI},
		},
		nested: []nestedMapping{
			{
				key:      "location",
				typeName: "Place",
				anchor:   "name",
				fields: []fieldMapping{
					{key: "name", metaKey: MetaEventLocation},
					{key: "address", metaKey: MetaEventLocationAddress},
				},
			},
			{
				key:      "organizer",
				typeName: "Organization",
				anchor:   "name",
				fields: []fieldMapping{
					{key: "name", metaKey: MetaEventOrganizer},
					{key: "url", metaKey: MetaEventOrganizerURL},
				},
			},
			{
				key:      "offers",
				typeName: "Offer",
				anchor:   "price",
				fields: []fieldMapping{
					{key: "price", metaKey: MetaEventPrice},
					{key: "priceCurrency", metaKey: MetaEventCurrency, def: defaultCurrency},
					{key: "availability", metaKey: MetaEventAvailability, convert: schemaURI},
					{key: "url", metaKey: MetaEventTicketURL},
					{key: "validFrom", metaKey: MetaEventValidFrom},
				},
			},
		},
	})
}

func eventProperties() types.Properties {
	return types.Properties{
		nameProperty("Event name"),
		descriptionProperty(false),
		urlProperty(),
		imageProperty(),
		{Name: "startDate", Label: "Start date", Description: "ISO 8601 date or date-time.", Kind: types.KindDate, Required: true},
		{Name: "endDate", Label: "End date", Kind: types.KindDate},
		{
			Name:  "eventStatus",
			Label: "Status",
			Kind:  types.KindSelect,
			Options: types.Options{
				{Code: "EventScheduled", Label: "Scheduled"},
				{Code: "EventCancelled", Label: "Cancelled"},
				{Code: "EventPostponed", Label: "Postponed"},
				{Code: "EventRescheduled", Label: "Rescheduled"},
				{Code: "EventMovedOnline", Label: "Moved online"},
			},
		},
		{
			Name:  "eventAttendanceMode",
			Label: "Attendance mode",
			Kind:  types.KindSelect,
			Options: types.Options{
				{Code: "OfflineEventAttendanceMode", Label: "In person"},
				{Code: "OnlineEventAttendanceMode", Label: "Online"},
				{Code: "MixedEventAttendanceMode", Label: "Mixed"},
			},
		},
		{
			Name:     "location",
			Label:    "Location",
			Kind:     types.KindObject,
			Required: true,
			Properties: types.Properties{
				{Name: "name", Label: "Venue name", Kind: types.KindText, Required: true},
				{Name: "address", Label: "Venue address", Kind: types.KindText},
			},
		},
		{
			Name:  "organizer",
			Label: "Organizer",
			Kind:  types.KindObject,
			Properties: types.Properties{
				{Name: "name", Label: "Organizer name", Kind: types.KindText, Required: true},
				{Name: "url", Label: "Organizer URL", Kind: types.KindURL},
			},
		},
		{
			Name:  "offers",
			Label: "Tickets",
			Kind:  types.KindObject,
			Properties: offerProperties(
				types.Property{
					Name:    "availability",
					Label:   "Availability",
					Kind:    types.KindSelect,
					Options: availabilityOptions(),
				},
				types.Property{Name: "url", Label: "Ticket URL", Kind: types.KindURL},
				types.Property{Name: "validFrom", Label: "On sale from", Kind: types.KindDate},
			),
		},
	}
}
