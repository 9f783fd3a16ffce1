package model

type Customer struct {
	BaseModel
	Name    string  `db:"name" json:"name"`
	Phone   *string `db:"phone" json:"phone"`
	Email   *string `db:"email" json:"email"`
	Address *string `db:"address" json:"address"`
}

type Supplier struct {
	BaseModel
	Name          string  `db:"name" json:"name"`
	ContactPerson *string `db:"contact_person" json:"contact_person"`
	Phone         *string `db:"phone" json:"phone"`
}

// User rows are owned by an external identity service; this service only
// reads them for created_by display joins.
type User struct {
	BaseModel
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"full_name"`
	Role     string `db:"role" json:"role"`
}
