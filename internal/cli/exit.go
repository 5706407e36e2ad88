package cli

import "fmt"

// Коды завершения
const (
	exitSuccess  = 0
	exitUsage    = 1
	exitRuntime  = 2
	exitConfig   = 3
	exitStorage  = 4
	exitRejected = 5
)

// ExitError: ошибка с кодом завершения процесса.
// RunE команд возвращает её, main переводит в os.Exit.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
