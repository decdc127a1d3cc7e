package doctor

import "time"

// Doctor is a member of the clinic's medical staff. Inactive doctors are
// hidden from the public site but keep their appointment history.
type Doctor struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Specialty string    `json:"specialty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
