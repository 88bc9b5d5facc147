package form

// Status is the submission lifecycle state.
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Field identifies one input of the registration form.
type Field string

const (
	FieldEmail    Field = "email"
	FieldDOB      Field = "dob"
	FieldPassword Field = "password"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldEmail, FieldDOB, FieldPassword}

// User-facing messages.
const (
	MsgSubmitted     = "Registration submitted. Check your email for verification."
	MsgFailedPrefix  = "Registration failed: "
	MsgNetworkPrefix = "Network error: "
	MsgInvalidEmail  = "Invalid email"
	MsgDOBRequired   = "Date of birth is required"
	MsgUnderage      = "You must be 18+"
	MsgWeakPassword  = "Password does not meet requirements"
)
