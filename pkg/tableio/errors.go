package tableio

import "fmt"

// FileError reports a filesystem failure while importing or exporting.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error for %q: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// InvalidFormatError reports an unknown format token or a file that does not
// follow the export layout.
type InvalidFormatError struct {
	Detail string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format: %s", e.Detail)
}
