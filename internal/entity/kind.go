// Package entity holds the clinic record types shared by storage, search and
// the HTTP layer.
package entity

// Kind names a record type. The value doubles as the table suffix in URLs and
// as the casbin resource name.
type Kind string

const (
	KindDoctor          Kind = "doctor"
	KindPatient         Kind = "patient"
	KindSchedule        Kind = "schedule"
	KindService         Kind = "service"
	KindReception       Kind = "reception"
	KindServiceRendered Kind = "service_rendered"
)

// Kinds lists every record type in menu order.
var Kinds = []Kind{
	KindDoctor,
	KindPatient,
	KindSchedule,
	KindService,
	KindReception,
	KindServiceRendered,
}

// Plural is the collection segment used in listing URLs.
func (k Kind) Plural() string {
	switch k {
	case KindServiceRendered:
		return "services_rendered"
	default:
		return string(k) + "s"
	}
}

func (k Kind) IsValid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}
