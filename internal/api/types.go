package api

// User type values returned by the backend.
const (
	UserTypeAdmin   = "admin"
	UserTypeGeneral = "general"
)

// User is the current-session projection of an account. It is fetched
// after login or on bootstrap and is never persisted locally.
type User struct {
	ID               int    `json:"id_user"`
	Firstname        string `json:"firstname"`
	Lastname         string `json:"lastname"`
	Email            string `json:"email"`
	UserType         string `json:"user_type"`
	Confirmed        bool   `json:"confirmed"`
	Active           bool   `json:"active"`
	PermissionConfig bool   `json:"permission_config"`
	CreatedAt        string `json:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"`
}

// FullName returns "Firstname Lastname" for display.
func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}

// IsAdmin reports whether the account may use the admin dashboard.
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the account type. The full
// user profile is always re-derived from a fresh GET /auth/user.
type LoginResponse struct {
	Token    string `json:"token"`
	UserType string `json:"user_type"`
}

// UpdatePasswordRequest is the POST /auth/update-password payload.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// CreateUserAdminRequest is the POST /auth/create-account-admin payload.
type CreateUserAdminRequest struct {
	Firstname string `json:"firstname" validate:"required" yaml:"firstname"`
	Lastname  string `json:"lastname" validate:"required" yaml:"lastname"`
	Email     string `json:"email" validate:"required,email" yaml:"email"`
	Password  string `json:"password" validate:"required,min=8" yaml:"password"`
}

// Category is an incident category.
type Category struct {
	ID       int    `json:"id_category"`
	Category string `json:"category"`
}

// Report is an environmental-incident report as listed in the admin
// dashboard.
type Report struct {
	ID       int    `json:"id_report"`
	PublicID string `json:"public_id"`
	Folio    string `json:"folio"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Categories struct {
		Category string `json:"category"`
	} `json:"categories"`
	User struct {
		Email string `json:"email"`
	} `json:"user"`
	Status struct {
		Status string `json:"status"`
	} `json:"status"`
	Images []struct {
		URLImage string `json:"url_image"`
	} `json:"images"`
	Review *Review `json:"review"`
}

// Review is an administrator's review attached to a report.
type Review struct {
	ID      int    `json:"id_review"`
	Comment string `json:"comment"`
	User    struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
	} `json:"user"`
	Images []struct {
		ID       int    `json:"id_image"`
		URLImage string `json:"url_image"`
	} `json:"images"`
}

// MapReport is the reduced report projection used for map plotting.
type MapReport struct {
	ID        int     `json:"id_report"`
	Folio     string  `json:"folio"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateReportRequest changes a report's category and status by folio.
type UpdateReportRequest struct {
	IDCategory int `json:"id_category" validate:"required"`
	IDStatus   int `json:"id_status" validate:"required"`
}

// CreateReviewRequest is the POST /reviews payload.
type CreateReviewRequest struct {
	PublicIDReport string   `json:"public_id_report" validate:"required"`
	ReviewNotes    string   `json:"review_notes" validate:"required"`
	Images         []string `json:"images"`
}
