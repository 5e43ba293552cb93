package applications

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Application es una solicitud de adopción. La transición de Status es de una
// sola vía: Pending -> Approved | Rejected.
type Application struct {
	ID                int
	ApplicantUsername string
	PetName           string
	Status            Status
}

func (a Application) Pending() bool { return a.Status == StatusPending }

// Decision es el resultado de procesar una solicitud.
// PetMarked es false si no se encontró la mascota (referencia colgante) o si se rechazó.
type Decision struct {
	Application Application
	PetMarked   bool
}
