package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the success envelope for registration endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signinResponse struct {
	Token    string   `json:"token"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// signupCustomerRequest is the clinic-initiated customer signup payload.
// There is no password field: the account password is generated server-side
// and emailed to the customer. Roles is a pointer-free slice on purpose — a
// nil slice means the field was absent and selects the default role.
type signupCustomerRequest struct {
	FirstName   string   `json:"firstName"   validate:"required"`
	LastName    string   `json:"lastName"    validate:"required"`
	Username    string   `json:"username"    validate:"required,min=3"`
	Email       string   `json:"email"       validate:"required,email"`
	Address     string   `json:"address"`
	PhoneNumber string   `json:"phoneNumber"`
	Gender      string   `json:"gender"`
	Roles       []string `json:"roles"`
}

type signupClinicRequest struct {
	Username string   `json:"username" validate:"required,min=3"`
	Password string   `json:"password" validate:"required,min=8"`
	Email    string   `json:"email"    validate:"required,email"`
	Roles    []string `json:"roles"`
}

// meResponse echoes the identity asserted by the presented token.
type meResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}
