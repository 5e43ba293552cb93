package file

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
)

const nextIDPrefix = "NEXT_ID:"

var errMalformed = errors.New("malformed record")

// encodeLine une los campos con coma. Solo si algún campo contiene coma o comillas
// se recurre a quoting CSV; los valores validados se escriben tal cual.
func encodeLine(fields ...string) string {
	plain := true
	for _, f := range fields {
		if strings.ContainsAny(f, ",\"\r\n") {
			plain = false
			break
		}
	}
	if plain {
		return strings.Join(fields, ",")
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(fields)
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func decodeLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return fields, nil
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: flag %q", errMalformed, s)
	}
}

func fieldCount(fields []string, want int) error {
	if len(fields) != want {
		return fmt.Errorf("%w: expected %d fields, got %d", errMalformed, want, len(fields))
	}
	return nil
}

// -------------------------
// Users: username,password,roleCode
// -------------------------

func encodeUser(u users.User) string {
	return encodeLine(u.Username, u.Password, strconv.Itoa(int(u.Role)))
}

func decodeUser(line string) (users.User, error) {
	f, err := decodeLine(line)
	if err != nil {
		return users.User{}, err
	}
	if err := fieldCount(f, 3); err != nil {
		return users.User{}, err
	}
	code, err := strconv.Atoi(strings.TrimSpace(f[2]))
	if err != nil {
		return users.User{}, fmt.Errorf("%w: role %q", errMalformed, f[2])
	}
	role := users.Role(code)
	if !role.Valid() {
		return users.User{}, fmt.Errorf("%w: unknown role %d", errMalformed, code)
	}
	if f[0] == "" {
		return users.User{}, fmt.Errorf("%w: empty username", errMalformed)
	}
	return users.User{Username: f[0], Password: f[1], Role: role}, nil
}

// -------------------------
// Pets: name,breed,age,vaccinated,adopted
// -------------------------

func encodePet(p pets.Pet) string {
	return encodeLine(p.Name, p.Breed, strconv.Itoa(p.Age), flag(p.Vaccinated), flag(p.Adopted))
}

func decodePet(line string) (pets.Pet, error) {
	f, err := decodeLine(line)
	if err != nil {
		return pets.Pet{}, err
	}
	if err := fieldCount(f, 5); err != nil {
		return pets.Pet{}, err
	}
	age, err := strconv.Atoi(strings.TrimSpace(f[2]))
	if err != nil || age < 0 {
		return pets.Pet{}, fmt.Errorf("%w: age %q", errMalformed, f[2])
	}
	vax, err := parseFlag(strings.TrimSpace(f[3]))
	if err != nil {
		return pets.Pet{}, err
	}
	adopted, err := parseFlag(strings.TrimSpace(f[4]))
	if err != nil {
		return pets.Pet{}, err
	}
	return pets.Pet{Name: f[0], Breed: f[1], Age: age, Vaccinated: vax, Adopted: adopted}, nil
}

// -------------------------
// Applications: NEXT_ID:<n> + id,username,petName,status
// -------------------------

func encodeNextID(n int) string {
	return nextIDPrefix + strconv.Itoa(n)
}

// decodeNextID devuelve ok=false si la línea no es un header NEXT_ID.
func decodeNextID(line string) (int, bool, error) {
	if !strings.HasPrefix(line, nextIDPrefix) {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, nextIDPrefix)))
	if err != nil || n < 1 {
		return 0, true, fmt.Errorf("%w: next id %q", errMalformed, line)
	}
	return n, true, nil
}

func encodeApplication(a applications.Application) string {
	return encodeLine(strconv.Itoa(a.ID), a.ApplicantUsername, a.PetName, string(a.Status))
}

func decodeApplication(line string) (applications.Application, error) {
	f, err := decodeLine(line)
	if err != nil {
		return applications.Application{}, err
	}
	if err := fieldCount(f, 4); err != nil {
		return applications.Application{}, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(f[0]))
	if err != nil || id < 1 {
		return applications.Application{}, fmt.Errorf("%w: id %q", errMalformed, f[0])
	}
	st := applications.Status(strings.TrimSpace(f[3]))
	if !st.Valid() {
		return applications.Application{}, fmt.Errorf("%w: status %q", errMalformed, f[3])
	}
	return applications.Application{ID: id, ApplicantUsername: f[1], PetName: f[2], Status: st}, nil
}
