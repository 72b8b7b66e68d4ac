package domain

// Role defines the access level of an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleHC    Role = "HC"
	RoleAdmin Role = "ADMIN"
)

// Privileged reports whether the role is entitled to clinical detail.
func (r Role) Privileged() bool {
	return r == RoleHC || r == RoleAdmin
}

// Classification denotes a lab value's relationship to its reference range.
// It is emitted by the model and passed through verbatim; the backend never
// recomputes it from the reference range text.
type Classification string

const (
	ClassificationNormal     Classification = "NORMAL"
	ClassificationHigh       Classification = "HIGH"
	ClassificationLow        Classification = "LOW"
	ClassificationBorderline Classification = "BORDERLINE"
)

// FileType represents the allowed file types for report upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWebP FileType = "webp"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"image/webp":      FileTypeWebP,
}

// ImageContentTypes holds the MIME types routed through the image extraction path.
var ImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ApplicationStatus represents the lifecycle of a healthcare-assistant application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// ChatRole is the conversational role of a stored chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)
