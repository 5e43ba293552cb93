package pets

import "fmt"

// Pet representa una mascota del refugio. No tiene ID propio: se identifica por
// su posición en el store, y las solicitudes la referencian por nombre.
type Pet struct {
	Name       string
	Breed      string
	Age        int // años
	Vaccinated bool
	Adopted    bool
}

func (p Pet) String() string {
	return fmt.Sprintf("%s (%s), Age: %d, Vaccinated: %s, Status: %s",
		p.Name, p.Breed, p.Age, yesNo(p.Vaccinated), p.StatusLabel())
}

func (p Pet) StatusLabel() string {
	if p.Adopted {
		return "Adopted"
	}
	return "Available"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
