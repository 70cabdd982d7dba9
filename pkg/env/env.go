package env

import "fmt"

// TypeError indicates an environment variable could not be converted
// to its expected type.
type TypeError struct {
	Name string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unable to convert environment variable: %s", e.Name)
}
