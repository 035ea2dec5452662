package construct

import "fmt"

// UnregisteredFileError is returned when LiteralBuilder.BuildFile is asked
// to build a file no fixture was registered for.
type UnregisteredFileError struct {
	File string
}

func (e *UnregisteredFileError) Error() string {
	return fmt.Sprintf("construct: no literal fixture registered for %q", e.File)
}
