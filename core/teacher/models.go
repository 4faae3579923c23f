package teacher

// RoleTeacher is the only role in the current scope.
const RoleTeacher = "teacher"

type Teacher struct {
	Username     string `json:"username" db:"username"`
	DisplayName  string `json:"display_name" db:"display_name"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
}

func (t *Teacher) SetPassword(pwd string) error {
	hash, err := MakePassword(pwd)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Teacher) CheckPassword(pwd string) bool {
	return VerifyPassword(t.PasswordHash, pwd)
}
