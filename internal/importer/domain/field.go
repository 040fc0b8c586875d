package importer

// Field is a canonical target attribute of an imported calendar event,
// independent of the source column naming.
type Field string

const (
	FieldEventTitle      Field = "event_title"
	FieldStartDate       Field = "start_date"
	FieldEndDate         Field = "end_date"
	FieldStatus          Field = "status"
	FieldTalentName      Field = "talent_name"
	FieldVenueName       Field = "venue_name"
	FieldLocationCity    Field = "location_city"
	FieldLocationState   Field = "location_state"
	FieldLocationCountry Field = "location_country"
	FieldAddressLine     Field = "address_line"
	FieldContactName     Field = "contact_name"
	FieldContactEmail    Field = "contact_email"
	FieldContactPhone    Field = "contact_phone"
	FieldURL             Field = "url"
	FieldNotesInternal   Field = "notes_internal"
	FieldNotesPublic     Field = "notes_public"
	FieldStartTime       Field = "start_time"
	FieldEndTime         Field = "end_time"
	FieldTimezone        Field = "timezone"
	FieldAllDay          Field = "all_day"
	FieldTravelIn        Field = "travel_in"
	FieldTravelOut       Field = "travel_out"
)

var fieldOrder = []Field{
	FieldEventTitle,
	FieldStartDate,
	FieldEndDate,
	FieldStatus,
	FieldTalentName,
	FieldVenueName,
	FieldLocationCity,
	FieldLocationState,
	FieldLocationCountry,
	FieldAddressLine,
	FieldContactName,
	FieldContactEmail,
	FieldContactPhone,
	FieldURL,
	FieldNotesInternal,
	FieldNotesPublic,
	FieldStartTime,
	FieldEndTime,
	FieldTimezone,
	FieldAllDay,
	FieldTravelIn,
	FieldTravelOut,
}

// Fields lists the canonical vocabulary in stable order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// ParseField validates a field name against the canonical vocabulary.
func ParseField(value string) (Field, bool) {
	for _, field := range fieldOrder {
		if Field(value) == field {
			return field, true
		}
	}
	return "", false
}
