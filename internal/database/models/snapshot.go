package models

// PasswordCategories is the table provisioned for every user on login.
// Only the first two can currently be set or verified through the API;
// the rest are reserved.
var PasswordCategories = []string{"Personal", "Diary", "Office", "Study", "Schedule"}

// SettableCategories are the categories that accept a password.
var SettableCategories = []string{"Personal", "Diary"}

// PasswordTable maps category name to its password, nil while unset.
type PasswordTable map[string]*string

func NewPasswordTable() PasswordTable {
	table := make(PasswordTable, len(PasswordCategories))
	for _, category := range PasswordCategories {
		table[category] = nil
	}
	return table
}

// CategorySettable reports whether a password may be set on category.
func CategorySettable(category string) bool {
	for _, c := range SettableCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Snapshot is the full service state, serialized as-is to the data file.
type Snapshot struct {
	Notes     map[string][]Note        `json:"notes"`
	Passwords map[string]PasswordTable `json:"passwords"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Notes:     make(map[string][]Note),
		Passwords: make(map[string]PasswordTable),
	}
}
