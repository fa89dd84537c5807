package model

// User - участник розыгрыша.
// Used становится true ровно один раз, в момент коммита спина
type User struct {
	ID   int
	Name string
	Used bool
}
