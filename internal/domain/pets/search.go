package pets

import "strings"

// Filter es una estrategia de búsqueda sobre mascotas.
type Filter func(Pet) bool

// ByName: substring case-sensitive sobre el nombre.
func ByName(sub string) Filter {
	return func(p Pet) bool { return strings.Contains(p.Name, sub) }
}

// ByBreed: substring case-sensitive sobre la raza.
func ByBreed(sub string) Filter {
	return func(p Pet) bool { return strings.Contains(p.Breed, sub) }
}

// ByAgeRange: rango inclusivo [minAge, maxAge].
func ByAgeRange(minAge, maxAge int) Filter {
	return func(p Pet) bool { return p.Age >= minAge && p.Age <= maxAge }
}

func Available() Filter {
	return func(p Pet) bool { return !p.Adopted }
}

func Adopted() Filter {
	return func(p Pet) bool { return p.Adopted }
}

// Search devuelve un slice nuevo con las mascotas que cumplen f, en el orden de items.
// Un filtro nil matchea todo.
func Search(items []Pet, f Filter) []Pet {
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if f == nil || f(p) {
			out = append(out, p)
		}
	}
	return out
}
