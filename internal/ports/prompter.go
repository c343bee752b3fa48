package ports

// Prompter supplies interactively entered values. Password reads must not
// echo when the input is a terminal.
type Prompter interface {
	Password(prompt string) (string, error)
	Line(prompt string) (string, error)
}
