package entities

import "time"

// TokenPrefix makes API tokens lexically distinguishable from session JWTs,
// so the authenticator can dispatch on the first few characters.
const TokenPrefix = "dochub_"

type Permission string

const (
	PermDocumentsRead   Permission = "documents:read"
	PermDocumentsCreate Permission = "documents:create"
	PermDocumentsUpdate Permission = "documents:update"
	PermDocumentsDelete Permission = "documents:delete"
	PermDocumentsSearch Permission = "documents:search"
	PermWorkspacesRead  Permission = "workspaces:read"
	PermMetadataRead    Permission = "metadata:read"
)

// AllPermissions is the wire-visible enumeration; anything outside it is
// rejected at token creation.
var AllPermissions = []Permission{
	PermDocumentsRead,
	PermDocumentsCreate,
	PermDocumentsUpdate,
	PermDocumentsDelete,
	PermDocumentsSearch,
	PermWorkspacesRead,
	PermMetadataRead,
}

func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

type APIToken struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  *string      `json:"description"`
	TokenHash    string       `json:"-"`
	TokenPreview string       `json:"token_preview"`
	// Permissions is granted at creation and immutable afterwards.
	Permissions  []Permission `json:"permissions"`
	CreatedBy    string       `json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
	LastUsed     *time.Time   `json:"last_used"`
}

func (t *APIToken) HasPermission(perm Permission) bool {
	for _, p := range t.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
