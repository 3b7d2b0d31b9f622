package dispatch

// Command is one parsed CLI invocation. The set of variants is closed;
// Dispatch switches over all of them.
type Command interface {
	command()
}

// Field selects what the account command prints.
type Field int

const (
	FieldAll Field = iota
	FieldUsername
	FieldPassword
)

// Login stores a new session from "<credentials>@<url>".
type Login struct {
	Arg string
}

// Logout clears the session.
type Logout struct{}

// Account prints a vault account.
type Account struct {
	ID    string
	Field Field
}

// Folder selects the vault folder used by pull and push.
type Folder struct {
	ID string
}

// SecretPull copies vault secrets of the selected folder into the platform.
type SecretPull struct {
	Tool  string
	Names []string
}

// SecretPush applies a vault account to the platform as a secret.
type SecretPush struct {
	Tool  string
	Names []string
}

// SecretShow prints a secret of the current platform project.
type SecretShow struct {
	Tool  string
	Names []string
}

func (Login) command()      {}
func (Logout) command()     {}
func (Account) command()    {}
func (Folder) command()     {}
func (SecretPull) command() {}
func (SecretPush) command() {}
func (SecretShow) command() {}
